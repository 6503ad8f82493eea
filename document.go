package toml

import (
	"io"
	"strings"
	"time"

	"github.com/golang-sql/civil"
)

// Document is a parsed (or freshly constructed) TOML document: an
// ordered Container at the root plus an index of its arrays of tables by
// dotted path, which the parser uses to append further [[header]]
// entries.
type Document struct {
	root *Container
	aots map[string]*AoTItem // joined dotted path -> its array of tables
}

func newDocument() *Document {
	return &Document{
		root: newContainer(),
		aots: make(map[string]*AoTItem),
	}
}

// pathKey joins dotted key names into a map key that cannot collide with
// a differently-segmented path (segments themselves may contain dots
// when quoted).
func pathKey(names []string) string {
	return strings.Join(names, "\x00")
}

// Root returns the document's top-level Container.
func (d *Document) Root() *Container { return d.root }

// String renders the full document back to TOML source text.
func (d *Document) String() string {
	return d.root.String()
}

// ParseOptions controls parser behavior that deviates from the library's
// strict default.
type ParseOptions struct {
	// AllowMixedArrays disables the post-parse array homogeneity check
	// (spec.md §4.6). The TOML grammar itself permits heterogeneous
	// arrays; this library rejects them by default (MixedArrayTypesError)
	// and this option is the "configuration signal" spec.md §4.6 reserves
	// for relaxing that check, for callers that need full grammar
	// conformance over the library's stricter default.
	AllowMixedArrays bool
}

// Parse parses TOML source text into a Document under the library's
// default (strict) options, returning a *ParseError on the first grammar
// or semantic violation.
func Parse(source string) (*Document, error) {
	return ParseWithOptions(source, ParseOptions{})
}

// ParseWithOptions parses source under explicit opts.
func ParseWithOptions(source string, opts ParseOptions) (*Document, error) {
	return newParserState(source, opts).parse()
}

// Loads is an alias for Parse matching the host ecosystem's naming
// (tomlkit.loads).
func Loads(source string) (*Document, error) { return Parse(source) }

// Dumps renders doc back to TOML source text.
func Dumps(doc *Document) string { return doc.String() }

// Load parses the full contents of r as TOML source.
func Load(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// Dump renders doc to w.
func Dump(doc *Document, w io.Writer) error {
	_, err := io.WriteString(w, doc.String())
	return err
}

// Get resolves a dotted path against the document root, mirroring
// tomlkit's dict-like get(key, default): returns the stored Item and true
// when path resolves, or def coerced to an Item (and false) when it does
// not, matching spec.md §6's `document.get(dotted_path, default=None)`.
func (d *Document) Get(path string, def any) (Item, bool) {
	if item := getPath(d.root, ParseDottedPath(path)); item != nil {
		return item, true
	}
	if def == nil {
		return nil, false
	}
	item, err := coerce(def)
	if err != nil {
		return nil, false
	}
	return item, false
}

// Set assigns value at a dotted path, creating intermediate tables as
// needed, matching spec.md §6's coerce-and-insert mutation semantics.
func (d *Document) Set(path string, value any) error {
	return setPath(d.root, ParseDottedPath(path), value)
}

// Delete removes the entry at a dotted path.
func (d *Document) Delete(path string) error {
	names := ParseDottedPath(path)
	if len(names) == 0 {
		return &MutationError{Kind: KindNonExistentKey, Key: path}
	}
	parent, ok := resolveParentContainer(d.root, names[:len(names)-1])
	if !ok {
		return &MutationError{Kind: KindNonExistentKey, Key: path}
	}
	return parent.Remove(names[len(names)-1])
}

// document-level value factories, mirroring tomlkit's api.py surface.

func NewDocument() *Document { return newDocument() }

func Integer(v int64) *IntegerItem { return NewInteger(v) }
func Float(v float64) *FloatItem   { return NewFloat(v) }
func Boolean(v bool) *BoolItem     { return NewBool(v) }
func String(v string) *StringItem { return NewString(v) }
func Date(v civil.Date) *DateItem { return NewDate(v) }
func Time(v civil.Time) *TimeItem { return NewTime(v) }
func DateTime(v time.Time) *DateTimeItem { return NewDateTime(v) }
func Array() *ArrayItem             { return NewArray() }
func InlineTable() *InlineTableItem { return NewInlineTable() }
func Table(path ...string) *TableItem { return NewTable(path...) }
func AoT(path ...string) *AoTItem     { return NewAoT(path...) }

// KeyValue returns a key/value pair as a (name, Item) ready to Append
// into a Container.
func KeyValue(name string, value Item) (string, Item) { return name, value }
