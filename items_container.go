package toml

import "strings"

// WhitespaceItem is a standalone blank line preserved verbatim between
// entries so round-tripping reproduces the document's blank-line
// spacing exactly (spec.md §3).
type WhitespaceItem struct {
	trivialItem
}

func (n *WhitespaceItem) ItemKind() ItemKind { return ItemWhitespace }
func (n *WhitespaceItem) Text() string       { return "" }
func (n *WhitespaceItem) clone() Item {
	c := *n
	return &c
}

// CommentItem is a standalone full-line comment (as opposed to the
// trailing comment attached to a value's own Trivia).
type CommentItem struct {
	trivialItem
}

func (n *CommentItem) ItemKind() ItemKind { return ItemComment }
func (n *CommentItem) Text() string       { return "" }
func (n *CommentItem) clone() Item {
	c := *n
	return &c
}

// NewComment builds a standalone comment line. text should not include
// the leading '#'; it is added automatically.
func NewComment(text string) *CommentItem {
	return &CommentItem{trivialItem: trivialItem{trivia: Trivia{Comment: "#" + text, Trail: "\n"}}}
}

// NullItem is the tombstone left behind by Container.Remove: a keyless
// slot that keeps the body positions of the other entries stable.
type NullItem struct {
	trivialItem
}

func (n *NullItem) ItemKind() ItemKind { return ItemNull }
func (n *NullItem) Text() string       { return "" }
func (n *NullItem) clone() Item {
	c := *n
	return &c
}

// ArrayElement pairs one array value with the trivia that precedes and
// follows it inside the brackets: leading whitespace/newlines, the value
// itself, a trailing comma, and any comment before the next element or
// the closing bracket.
type ArrayElement struct {
	Item      Item
	LeadWS    string // whitespace/newlines before the value
	Comma     bool
	TrailWS   string // whitespace between value/comma and comment
	Comment   string
}

// ArrayItem is a TOML array. Multiline records whether the source (or a
// constructed array explicitly asked for it) spans multiple lines, which
// controls comma/newline placement on emit.
type ArrayItem struct {
	trivialItem
	Elements  []ArrayElement
	Multiline bool
}

func (n *ArrayItem) ItemKind() ItemKind { return ItemArray }

func (n *ArrayItem) Text() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, el := range n.Elements {
		b.WriteString(el.LeadWS)
		b.WriteString(el.Item.Text())
		if el.Comma || i < len(n.Elements)-1 {
			b.WriteByte(',')
		}
		b.WriteString(el.TrailWS)
		b.WriteString(el.Comment)
	}
	if n.Multiline && !n.lastTrailHasNewline() {
		b.WriteByte('\n')
	}
	b.WriteByte(']')
	return b.String()
}

// lastTrailHasNewline reports whether the final element's trailing
// trivia already supplies the newline before the closing bracket, so
// Text doesn't double it for a parsed (as opposed to freshly
// constructed) multiline array.
func (n *ArrayItem) lastTrailHasNewline() bool {
	if len(n.Elements) == 0 {
		return false
	}
	return strings.Contains(n.Elements[len(n.Elements)-1].TrailWS, "\n")
}

// IsHomogeneous reports whether every element shares the same ItemKind,
// the post-parse check spec.md §4.6 requires before an array is accepted
// under the library's default strict mode.
func (n *ArrayItem) IsHomogeneous() bool {
	if len(n.Elements) == 0 {
		return true
	}
	kind := n.Elements[0].Item.ItemKind()
	for _, el := range n.Elements[1:] {
		if el.Item.ItemKind() != kind {
			return false
		}
	}
	return true
}

func (n *ArrayItem) clone() Item {
	c := *n
	c.Elements = make([]ArrayElement, len(n.Elements))
	for i, el := range n.Elements {
		el.Item = el.Item.clone()
		c.Elements[i] = el
	}
	return &c
}

// NewArray constructs an empty array item; use Append to populate it.
func NewArray() *ArrayItem {
	return &ArrayItem{trivialItem: trivialItem{trivia: defaultTrivia()}}
}

// Append adds value as a new trailing element, marking the previous
// element with a comma and leading the new one with a single space (a
// newline plus two spaces when Multiline is set).
func (n *ArrayItem) Append(value Item) {
	lead := ""
	if len(n.Elements) > 0 {
		n.Elements[len(n.Elements)-1].Comma = true
		lead = " "
		if n.Multiline {
			lead = "\n  "
		}
	}
	n.Elements = append(n.Elements, ArrayElement{Item: value, LeadWS: lead})
}

// Values returns the array's items in order, ignoring layout.
func (n *ArrayItem) Values() []Item {
	out := make([]Item, len(n.Elements))
	for i, el := range n.Elements {
		out[i] = el.Item
	}
	return out
}

// inlineEntry pairs a key/value pair inside an InlineTable with its
// surrounding comma and whitespace.
type inlineEntry struct {
	key       Key       // used when this entry is a single-segment key
	dottedKey DottedKey // used instead of key when len > 1
	item      Item
	leadWS    string
	comma     bool
	trailWS   string
}

func (e inlineEntry) render() string {
	if e.dottedKey != nil {
		return e.dottedKey.Render() + e.dottedKey[len(e.dottedKey)-1].Sep
	}
	return e.key.Render() + e.key.Sep
}

// InlineTableItem is a TOML inline table: `{ a = 1, b = 2 }`. It wraps a
// Container for its key lookups but renders on one source line.
type InlineTableItem struct {
	trivialItem
	body *Container
	// layout mirrors body's key order but additionally records the comma/
	// whitespace layout between curly braces.
	layout []inlineEntry
}

func (n *InlineTableItem) ItemKind() ItemKind { return ItemInlineTable }

func (n *InlineTableItem) Text() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range n.layout {
		b.WriteString(e.leadWS)
		b.WriteString(e.render())
		b.WriteString(e.item.Text())
		if e.comma || i < len(n.layout)-1 {
			b.WriteByte(',')
		}
		b.WriteString(e.trailWS)
	}
	b.WriteByte('}')
	return b.String()
}

func (n *InlineTableItem) clone() Item {
	c := *n
	c.body = n.body.clone()
	c.layout = make([]inlineEntry, len(n.layout))
	for i, e := range n.layout {
		e.item = e.item.clone()
		c.layout[i] = e
	}
	return &c
}

// NewInlineTable constructs an empty inline table.
func NewInlineTable() *InlineTableItem {
	return &InlineTableItem{trivialItem: trivialItem{trivia: defaultTrivia()}, body: newContainer()}
}

// Set adds or overwrites key = value inside the inline table.
func (n *InlineTableItem) Set(name string, value Item) {
	key := MakeKey(name)
	if n.body.Contains(name) {
		_ = n.body.Replace(name, value)
		for i := range n.layout {
			dk := n.layout[i].dottedKey
			if (dk == nil && n.layout[i].key.Name == name) || (len(dk) == 1 && dk[0].Name == name) {
				n.layout[i].item = value
			}
		}
		return
	}
	lead := ""
	if len(n.layout) > 0 {
		n.layout[len(n.layout)-1].comma = true
		lead = " "
	}
	n.body.rawAppend(DottedKey{key}, value)
	n.layout = append(n.layout, inlineEntry{key: key, item: value, leadWS: lead})
}

// Get returns the value stored under name, or nil if absent.
func (n *InlineTableItem) Get(name string) Item { return n.body.Get(name) }

// SetPath assigns val under the full dotted key dk, preserving it as one
// entry (rendered "a.b = 1") rather than materializing a nested inline
// table, so parsing and re-emitting "{a.b = 1}" is lossless.
func (n *InlineTableItem) SetPath(dk DottedKey, val Item) {
	names := dk.Names()
	if len(names) == 1 {
		n.Set(names[0], val)
		return
	}
	lead := ""
	if len(n.layout) > 0 {
		n.layout[len(n.layout)-1].comma = true
		lead = " "
	}
	n.body.rawAppend(dk, val)
	n.layout = append(n.layout, inlineEntry{dottedKey: dk, item: val, leadWS: lead})
}

// Container exposes the inline table's underlying key/value store for
// the dotted-path query machinery in query.go.
func (n *InlineTableItem) Container() *Container { return n.body }

// appendRaw records one parsed "key = value" entry with its exact source
// layout, bypassing the style-repair defaults Set/SetPath apply to
// programmatically constructed entries.
func (n *InlineTableItem) appendRaw(dk DottedKey, val Item, leadWS string, comma bool, trailWS string) {
	n.body.rawAppend(dk, val)
	n.layout = append(n.layout, inlineEntry{dottedKey: dk, item: val, leadWS: leadWS, comma: comma, trailWS: trailWS})
}

// TableItem is a standard TOML table, declared either by an explicit
// `[header]` or materialized implicitly as a dotted-key parent
// (spec.md §3, §7). Explicit records whether a `[header]` line was (or
// should be, on emit) written for this table.
type TableItem struct {
	trivialItem
	Path     DottedKey
	Explicit bool
	body     *Container
}

func (n *TableItem) ItemKind() ItemKind { return ItemTable }

// Text renders only the header line's key path; callers wanting the full
// section (header + body) should use render(), which appendRendered and
// the emitter call instead.
func (n *TableItem) Text() string {
	return "[" + n.Path.Render() + "]"
}

func (n *TableItem) render() string {
	var b strings.Builder
	if n.Explicit {
		b.WriteString("[" + n.Path.Render() + "]")
		b.WriteString(n.trivia.CommentWS)
		b.WriteString(n.trivia.Comment)
		b.WriteString(n.trivia.Trail)
	}
	b.WriteString(n.body.String())
	return b.String()
}

func (n *TableItem) clone() Item {
	c := *n
	c.Path = n.Path.clone()
	c.body = n.body.clone()
	return &c
}

// NewTable constructs an explicit table with the given dotted path.
func NewTable(path ...string) *TableItem {
	keys := make(DottedKey, len(path))
	for i, p := range path {
		keys[i] = MakeKey(p)
	}
	return &TableItem{
		trivialItem: trivialItem{trivia: defaultTrivia()},
		Path:        keys,
		Explicit:    true,
		body:        newContainer(),
	}
}

// Container exposes the table's underlying key/value store.
func (n *TableItem) Container() *Container { return n.body }

// Get, Append, Delete proxy to the underlying Container for API parity
// with the teacher's TableNode.
func (n *TableItem) Get(name string) Item             { return n.body.Get(name) }
func (n *TableItem) Append(name string, item Item) error { return n.body.Append(name, item) }
func (n *TableItem) Delete(name string) error            { return n.body.Remove(name) }

// AoTItem is an array of tables: the ordered set of `[[header]]`
// occurrences that share one dotted path (spec.md §3, §7).
type AoTItem struct {
	trivialItem
	Path    DottedKey
	Entries []*TableItem
}

func (n *AoTItem) ItemKind() ItemKind { return ItemAoT }

func (n *AoTItem) Text() string {
	return n.render()
}

func (n *AoTItem) render() string {
	var b strings.Builder
	for _, t := range n.Entries {
		b.WriteString(t.Trivia().Indent)
		b.WriteString("[[" + n.Path.Render() + "]]")
		b.WriteString(t.Trivia().CommentWS)
		b.WriteString(t.Trivia().Comment)
		b.WriteString(t.Trivia().Trail)
		b.WriteString(t.body.String())
	}
	return b.String()
}

func (n *AoTItem) clone() Item {
	c := *n
	c.Path = n.Path.clone()
	c.Entries = make([]*TableItem, len(n.Entries))
	for i, t := range n.Entries {
		c.Entries[i] = t.clone().(*TableItem)
	}
	return &c
}

// NewAoT constructs an empty array of tables at path.
func NewAoT(path ...string) *AoTItem {
	keys := make(DottedKey, len(path))
	for i, p := range path {
		keys[i] = MakeKey(p)
	}
	return &AoTItem{trivialItem: trivialItem{trivia: defaultTrivia()}, Path: keys}
}

// Append adds a new table entry to the end of the array of tables.
func (n *AoTItem) Append(t *TableItem) {
	t.Path = n.Path
	t.Explicit = false
	n.Entries = append(n.Entries, t)
}

// Last returns the most recently appended entry, or nil if empty.
func (n *AoTItem) Last() *TableItem {
	if len(n.Entries) == 0 {
		return nil
	}
	return n.Entries[len(n.Entries)-1]
}
