package toml

// ItemKind identifies the variant of an Item, mirroring the tagged
// Item union of spec.md §3.
type ItemKind int

const (
	ItemWhitespace ItemKind = iota
	ItemComment
	ItemInteger
	ItemFloat
	ItemBool
	ItemDate
	ItemTime
	ItemDateTime
	ItemString
	ItemArray
	ItemInlineTable
	ItemTable
	ItemAoT
	ItemNull
)

// Item is the sealed set of TOML value kinds. Clients read and mutate
// through Container, never by editing an Item's rendered text directly,
// so trivia stays consistent with the surrounding source (spec.md §9).
type Item interface {
	ItemKind() ItemKind
	// Text renders this item's own value text, excluding trivia; for
	// Array/InlineTable/AoT it renders the full nested body as well,
	// while a Table renders only its "[path]" header text.
	Text() string
	clone() Item
}

// trivialItem is embedded by every leaf (non-container) item to provide
// the shared Trivia storage and accessors the mutation algebra needs.
type trivialItem struct {
	trivia Trivia
}

func (t *trivialItem) Trivia() Trivia     { return t.trivia }
func (t *trivialItem) SetTrivia(tv Trivia) { t.trivia = tv }

// TriviaHolder is implemented by every leaf item; Table/AoT/InlineTable
// also implement it (their own header/brace trivia), but their nested
// Container has its own per-entry trivia independent of this.
type TriviaHolder interface {
	Trivia() Trivia
	SetTrivia(Trivia)
}
