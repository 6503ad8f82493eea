package toml

import (
	"fmt"
	"strings"
)

// parserState drives a single top-to-bottom pass over a token stream,
// building a Document's Container tree directly (no intermediate parse
// tree), tracking whichever table is currently "open" for bare
// key/value lines the way the reference grammar's state machine does
// (spec.md §7).
type parserState struct {
	lex    *lexer
	cur    Token
	source string

	doc    *Document
	active *Container // container currently receiving bare key/value lines
	path   []string    // dotted path of active, nil at the root

	explicit map[string]bool // pathKey -> table was opened with an explicit [header]
	sealed   map[string]bool // pathKey -> table closed to further dotted/header extension

	// strictArrays enables the post-parse array homogeneity check
	// (spec.md §4.6); ParseOptions.AllowMixedArrays disables it.
	strictArrays bool
}

func newParserState(source string, opts ParseOptions) *parserState {
	p := &parserState{
		lex:          newLexer(source),
		source:       source,
		doc:          newDocument(),
		explicit:     make(map[string]bool),
		sealed:       make(map[string]bool),
		strictArrays: !opts.AllowMixedArrays,
	}
	p.active = p.doc.root
	p.cur = p.lex.Next()
	return p
}

func (p *parserState) advance() Token {
	prev := p.cur
	p.cur = p.lex.Next()
	return prev
}

func (p *parserState) at(t TokenType) bool { return p.cur.Type == t }

func (p *parserState) parseError(msg string) error {
	return &ParseError{Kind: KindUnexpectedChar, Message: msg, Line: p.cur.Line, Column: p.cur.Col, Source: p.source}
}

func (p *parserState) tokError(msg string, tok Token) error {
	return &ParseError{Kind: KindUnexpectedChar, Message: msg, Line: tok.Line, Column: tok.Col, Source: p.source}
}

func (p *parserState) parse() (*Document, error) {
	for !p.at(TokEOF) {
		indent := ""
		if p.at(TokWhitespace) {
			indent = p.advance().Text
		}

		switch {
		case p.at(TokLBracket):
			if err := p.parseHeader(indent); err != nil {
				return nil, err
			}
		case p.at(TokNewline):
			nl := p.advance().Text
			p.active.rawAppend(nil, &WhitespaceItem{trivialItem{trivia: Trivia{Indent: indent, Trail: nl}}})
		case p.at(TokComment):
			ctok := p.advance()
			if msg := validateCommentText(ctok.Text); msg != "" {
				return nil, p.tokError(msg, ctok)
			}
			trail, err := p.consumeLineEnd()
			if err != nil {
				return nil, err
			}
			p.active.rawAppend(nil, &CommentItem{trivialItem{trivia: Trivia{Indent: indent, Comment: ctok.Text, Trail: trail}}})
		case p.at(TokEOF):
			if indent != "" {
				p.active.rawAppend(nil, &WhitespaceItem{trivialItem{trivia: Trivia{Indent: indent}}})
			}
		default:
			if err := p.parseKeyValueLine(indent); err != nil {
				return nil, err
			}
		}
	}
	return p.doc, nil
}

// consumeLineEnd consumes a trailing newline if present, erroring if
// anything other than EOF follows instead.
func (p *parserState) consumeLineEnd() (string, error) {
	if p.at(TokNewline) {
		return p.advance().Text, nil
	}
	if p.at(TokEOF) {
		return "", nil
	}
	return "", p.parseError("expected newline or end of file")
}

// parseKeyValueLine parses "key = value" (dotted or simple), attaching
// it to p.active with indent as its leading trivia.
func (p *parserState) parseKeyValueLine(indent string) error {
	dk, err := p.parseDottedKey()
	if err != nil {
		return err
	}

	preEq := ""
	if p.at(TokWhitespace) {
		preEq = p.advance().Text
	}
	if !p.at(TokEquals) {
		return p.parseError("expected '='")
	}
	p.lex.valueMode = true
	p.advance()
	postEq := ""
	if p.at(TokWhitespace) {
		postEq = p.advance().Text
	}
	dk[len(dk)-1].Sep = preEq + "=" + postEq

	val, err := p.parseValue()
	if err != nil {
		return err
	}
	p.lex.valueMode = false

	commentWS := ""
	if p.at(TokWhitespace) {
		commentWS = p.advance().Text
	}
	comment := ""
	if p.at(TokComment) {
		ctok := p.advance()
		if msg := validateCommentText(ctok.Text); msg != "" {
			return p.tokError(msg, ctok)
		}
		comment = ctok.Text
	}
	trail, err := p.consumeLineEnd()
	if err != nil {
		return err
	}

	if holder, ok := val.(TriviaHolder); ok {
		holder.SetTrivia(Trivia{Indent: indent, CommentWS: commentWS, Comment: comment, Trail: trail})
	}

	return p.placeKeyValue(dk, val)
}

// placeKeyValue inserts a (possibly dotted) key/value pair into p.active,
// rejecting redeclarations (spec.md §7, §9). A dotted key is stored whole
// as one entry under its full DottedKey; no intermediate tables are
// created for its leading segments (see Container).
func (p *parserState) placeKeyValue(dk DottedKey, val Item) error {
	names := dk.Names()
	if len(names) == 1 {
		if p.active.Contains(names[0]) {
			return &MutationError{Kind: KindKeyAlreadyPresent, Key: names[0]}
		}
		p.active.rawAppend(dk, val)
		return nil
	}
	if p.active.GetDotted(names) != nil {
		return &MutationError{Kind: KindKeyAlreadyPresent, Key: dk.Render()}
	}
	if p.active.Contains(names[0]) {
		existing := p.active.Get(names[0])
		if _, ok := existing.(*TableItem); !ok {
			return &MutationError{Kind: KindKeyAlreadyPresent, Key: names[0]}
		}
	}
	p.active.rawAppend(dk, val)
	return nil
}

// parseDottedKey parses one or more dot-separated key segments, each
// individually quoted or bare, returning the full DottedKey.
func (p *parserState) parseDottedKey() (DottedKey, error) {
	var dk DottedKey
	seg, err := p.parseKeySegment()
	if err != nil {
		return nil, err
	}
	dk = append(dk, seg)

	for p.at(TokDot) || (p.at(TokWhitespace) && p.lex.peekForDot()) {
		if p.at(TokWhitespace) {
			p.advance()
		}
		if !p.at(TokDot) {
			break
		}
		p.advance()
		if p.at(TokWhitespace) {
			p.advance()
		}
		seg, err = p.parseKeySegment()
		if err != nil {
			return nil, err
		}
		dk = append(dk, seg)
	}
	if len(dk) > 1 {
		for i := 0; i < len(dk)-1; i++ {
			dk[i].Sep = "."
		}
	}
	return dk, nil
}

func (p *parserState) parseKeySegment() (Key, error) {
	switch p.cur.Type { //nolint:exhaustive
	case TokBareKey:
		tok := p.advance()
		for _, r := range tok.Text {
			if !isBareKeyChar(r) {
				return Key{}, p.tokError(fmt.Sprintf("invalid character %q in bare key", r), tok)
			}
		}
		return Key{Kind: KeyBare, Name: tok.Text, Raw: tok.Text, Sep: " = "}, nil
	case TokBoolean, TokInteger, TokFloat, TokDateTime:
		tok := p.advance()
		return Key{Kind: KeyBare, Name: tok.Text, Raw: tok.Text, Sep: " = "}, nil
	case TokBasicString:
		tok := p.advance()
		if msg := validateStringText(tok.Text); msg != "" {
			return Key{}, p.tokError(msg, tok)
		}
		return Key{Kind: KeyBasic, Name: decodeStringLiteral(tok.Text), Raw: tok.Text, Sep: " = "}, nil
	case TokLiteralString:
		tok := p.advance()
		if msg := validateStringText(tok.Text); msg != "" {
			return Key{}, p.tokError(msg, tok)
		}
		return Key{Kind: KeyLiteral, Name: decodeStringLiteral(tok.Text), Raw: tok.Text, Sep: " = "}, nil
	default:
		return Key{}, p.parseError("expected key")
	}
}

// parseHeader parses a [table] or [[array-of-tables]] header line and
// switches p.active to the table it names.
func (p *parserState) parseHeader(indent string) error {
	hdrLine, hdrCol := p.cur.Line, p.cur.Col
	p.advance() // first [
	isAoT := false
	if p.at(TokLBracket) {
		isAoT = true
		p.advance() // second [
	}

	if p.at(TokWhitespace) {
		p.advance()
	}
	dk, err := p.parseDottedKey()
	if err != nil {
		return err
	}
	if p.at(TokWhitespace) {
		p.advance()
	}
	if !p.at(TokRBracket) {
		return p.parseError("expected ']' to close table header")
	}
	p.advance()
	if isAoT {
		if !p.at(TokRBracket) {
			return p.parseError("expected ']]' to close array-of-tables header")
		}
		p.advance()
	}

	commentWS := ""
	if p.at(TokWhitespace) {
		commentWS = p.advance().Text
	}
	comment := ""
	if p.at(TokComment) {
		ctok := p.advance()
		if msg := validateCommentText(ctok.Text); msg != "" {
			return p.tokError(msg, ctok)
		}
		comment = ctok.Text
	}
	trail, err := p.consumeLineEnd()
	if err != nil {
		return err
	}
	trivia := Trivia{Indent: indent, CommentWS: commentWS, Comment: comment, Trail: trail}

	names := dk.Names()
	if isAoT {
		return p.openArrayOfTables(dk, names, trivia, hdrLine, hdrCol)
	}
	return p.openTable(dk, names, trivia, hdrLine, hdrCol)
}

// openTable resolves (creating as needed) the table named by names,
// rejecting a second explicit [header] for the same path or a header
// that collides with a non-table value (spec.md §7's table/AoT
// conflict rules).
func (p *parserState) openTable(dk DottedKey, names []string, trivia Trivia, line, col int) error {
	key := pathKey(names)
	if p.sealed[key] {
		return &ParseError{Kind: KindKeyAlreadyPresent, Message: "cannot redeclare array-of-tables " + dk.Render() + " as a table", Line: line, Column: col, Source: p.source}
	}
	if p.explicit[key] {
		return &MutationError{Kind: KindKeyAlreadyPresent, Key: dk.Render()}
	}
	t, err := p.materializeTable(names)
	if err != nil {
		return err
	}
	t.Path = dk
	t.Explicit = true
	t.trivia = trivia
	p.explicit[key] = true
	p.active = t.body
	p.path = names
	return nil
}

// openArrayOfTables appends a new entry to the array of tables at
// names, creating the AoTItem on first use.
func (p *parserState) openArrayOfTables(dk DottedKey, names []string, trivia Trivia, line, col int) error {
	_ = line
	_ = col
	key := pathKey(names)
	if p.explicit[key] {
		return &MutationError{Kind: KindKeyAlreadyPresent, Key: dk.Render()}
	}
	aot, ok := p.doc.aots[key]
	if !ok {
		parent, err := p.materializeParent(names[:len(names)-1])
		if err != nil {
			return err
		}
		aot = &AoTItem{Path: dk}
		if err := parent.rawAppendKey(names[len(names)-1], aot); err != nil {
			return err
		}
		p.doc.aots[key] = aot
		p.sealed[key] = true
	}
	t := &TableItem{trivialItem: trivialItem{trivia: trivia}, Path: dk, Explicit: false, body: newContainer()}
	aot.Entries = append(aot.Entries, t)
	p.active = t.body
	p.path = names
	return nil
}

// materializeTable walks/creates the chain of implicit tables down to
// names, returning the (possibly freshly created) TableItem at that
// exact path.
func (p *parserState) materializeTable(names []string) (*TableItem, error) {
	parent, err := p.materializeParent(names[:len(names)-1])
	if err != nil {
		return nil, err
	}
	last := names[len(names)-1]
	if item := parent.Get(last); item != nil {
		t, ok := item.(*TableItem)
		if !ok {
			return nil, &MutationError{Kind: KindKeyAlreadyPresent, Key: last}
		}
		return t, nil
	}
	t := &TableItem{trivialItem: trivialItem{trivia: defaultTrivia()}, Path: DottedKey{MakeKey(last)}, Explicit: false, body: newContainer()}
	if err := parent.rawAppendKey(last, t); err != nil {
		return nil, err
	}
	return t, nil
}

// materializeParent walks/creates the chain of implicit tables named by
// names, returning the Container that the final segment belongs in.
//
// Re-extending a table that is no longer its parent's last body slot —
// i.e. a sibling header was declared in between the table's first
// appearance and this one — is a genuine out-of-order reopening (spec.md
// §3's full OutOfOrderTableProxy scenario: "[a.a]\nk=1\n[a.b]\n[a.a.c]\n").
// This implementation does not join disjoint declaration blocks of one
// table into a single re-emittable position (see DESIGN.md); rather than
// silently re-parenting the later block into the earlier one's textual
// position (which would corrupt round-trip output), it is rejected here
// with a clear parse error.
func (p *parserState) materializeParent(names []string) (*Container, error) {
	cur := p.doc.root
	for _, name := range names {
		item := cur.Get(name)
		if item == nil {
			t := &TableItem{trivialItem: trivialItem{trivia: defaultTrivia()}, Path: DottedKey{MakeKey(name)}, Explicit: false, body: newContainer()}
			if err := cur.rawAppendKey(name, t); err != nil {
				return nil, err
			}
			cur = t.body
			continue
		}
		switch v := item.(type) {
		case *TableItem:
			if !cur.isLastEntry(name) {
				return nil, &ParseError{
					Kind:    KindKeyAlreadyPresent,
					Message: "out-of-order re-extension of table " + name + " is not supported: a sibling table was declared in between",
					Line:    p.cur.Line,
					Column:  p.cur.Col,
					Source:  p.source,
				}
			}
			cur = v.body
		case *AoTItem:
			// A path segment resolving to an array of tables descends
			// into its most recently declared entry (spec.md §7): e.g.
			// "[fruits.physical]" after "[[fruits]]" extends that entry.
			last := v.Last()
			if last == nil {
				return nil, &MutationError{Kind: KindKeyAlreadyPresent, Key: name}
			}
			cur = last.body
		default:
			return nil, &MutationError{Kind: KindKeyAlreadyPresent, Key: name}
		}
	}
	return cur, nil
}

// --- value parsing ---

func (p *parserState) parseValue() (Item, error) {
	switch p.cur.Type { //nolint:exhaustive
	case TokBasicString, TokMultiLineBasicStr, TokLiteralString, TokMultiLineLiteralStr:
		return p.parseStringValue()
	case TokInteger:
		return p.parseIntegerValue()
	case TokFloat:
		return p.parseFloatValue()
	case TokBoolean:
		tok := p.advance()
		return &BoolItem{Value: tok.Text == "true"}, nil
	case TokDateTime:
		return p.parseDateTimeValue()
	case TokLBracket:
		return p.parseArrayValue()
	case TokLBrace:
		return p.parseInlineTableValue()
	default:
		return nil, p.parseError("expected value")
	}
}

func (p *parserState) parseStringValue() (Item, error) {
	tok := p.advance()
	if msg := validateStringText(tok.Text); msg != "" {
		return nil, p.tokError(msg, tok)
	}
	kind := stringKindFromRaw(tok.Text)
	return &StringItem{Kind: kind, Value: decodeStringLiteral(tok.Text), Original: tok.Text}, nil
}

func stringKindFromRaw(raw string) StringKind {
	switch {
	case len(raw) >= 6 && raw[:3] == `"""`:
		return StringBasicMulti
	case len(raw) >= 6 && raw[:3] == "'''":
		return StringLiteralMulti
	case raw[0] == '\'':
		return StringLiteralSingle
	default:
		return StringBasicSingle
	}
}

func (p *parserState) parseIntegerValue() (Item, error) {
	tok := p.advance()
	if msg := validateNumberText(tok.Text); msg != "" {
		return nil, p.tokError(msg, tok)
	}
	v, err := parseIntegerRaw(tok.Text)
	if err != nil {
		return nil, p.tokError("invalid integer: "+err.Error(), tok)
	}
	return &IntegerItem{Value: v, Raw: tok.Text}, nil
}

func (p *parserState) parseFloatValue() (Item, error) {
	tok := p.advance()
	if msg := validateNumberText(tok.Text); msg != "" {
		return nil, p.tokError(msg, tok)
	}
	item := &FloatItem{Raw: tok.Text}
	v, err := item.Float64()
	if err != nil {
		return nil, p.tokError("invalid float: "+err.Error(), tok)
	}
	item.Value = v
	return item, nil
}

func (p *parserState) parseDateTimeValue() (Item, error) {
	tok := p.advance()
	if msg := validateDateTimeText(tok.Text); msg != "" {
		return nil, p.tokError(msg, tok)
	}
	return parseDateTimeLiteral(tok.Text), nil
}

func (p *parserState) parseArrayValue() (Item, error) {
	p.advance() // [
	arr := NewArray()
	arr.Multiline = false
	savedValueMode := p.lex.valueMode
	p.lex.valueMode = true

	lead, err := p.skipArrayTrivia()
	if err != nil {
		return nil, err
	}
	if strings.ContainsRune(lead, '\n') {
		arr.Multiline = true
	}

	for !p.at(TokRBracket) && !p.at(TokEOF) {
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		p.lex.valueMode = true
		el := ArrayElement{Item: val, LeadWS: lead}

		mid, err := p.skipArrayTrivia()
		if err != nil {
			return nil, err
		}
		if p.at(TokComma) {
			p.advance()
			el.Comma = true
		}
		trail, err := p.skipArrayTrivia()
		if err != nil {
			return nil, err
		}
		if strings.ContainsRune(mid, '\n') || strings.ContainsRune(trail, '\n') {
			arr.Multiline = true
		}
		el.TrailWS = mid + trail
		arr.Elements = append(arr.Elements, el)
		lead = ""
	}
	if !p.at(TokRBracket) {
		return nil, p.parseError("expected ']' to close array")
	}
	p.advance()
	p.lex.valueMode = savedValueMode
	if p.strictArrays && !arr.IsHomogeneous() {
		return nil, &ParseError{Kind: KindMixedArrayTypes, Message: "array elements must all be the same type", Line: p.cur.Line, Column: p.cur.Col, Source: p.source}
	}
	return arr, nil
}

// skipArrayTrivia consumes whitespace/newlines/comments inside an array
// (all insignificant to its value, only to its layout) and returns the
// raw text consumed.
func (p *parserState) skipArrayTrivia() (string, error) {
	var out []byte
	for p.at(TokWhitespace) || p.at(TokNewline) || p.at(TokComment) {
		if p.at(TokComment) {
			tok := p.cur
			if msg := validateCommentText(tok.Text); msg != "" {
				return "", p.tokError(msg, tok)
			}
		}
		out = append(out, p.advance().Text...)
	}
	return string(out), nil
}

func (p *parserState) parseInlineTableValue() (Item, error) {
	p.advance() // {
	it := NewInlineTable()
	savedValueMode := p.lex.valueMode
	p.lex.valueMode = false

	lead := ""
	if p.at(TokWhitespace) {
		lead = p.advance().Text
	}
	for !p.at(TokRBrace) && !p.at(TokEOF) {
		dk, err := p.parseDottedKey()
		if err != nil {
			return nil, err
		}
		preEq := ""
		if p.at(TokWhitespace) {
			preEq = p.advance().Text
		}
		if !p.at(TokEquals) {
			return nil, p.parseError("expected '=' in inline table")
		}
		p.lex.valueMode = true
		p.advance()
		postEq := ""
		if p.at(TokWhitespace) {
			postEq = p.advance().Text
		}
		dk[len(dk)-1].Sep = preEq + "=" + postEq
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		p.lex.valueMode = false
		comma := false
		trail := ""
		if p.at(TokWhitespace) {
			trail = p.advance().Text
		}
		if p.at(TokComma) {
			p.advance()
			comma = true
			if p.at(TokWhitespace) {
				trail += p.advance().Text
			}
		} else if !p.at(TokRBrace) {
			return nil, p.parseError("expected ',' or '}' in inline table")
		}
		it.appendRaw(dk, val, lead, comma, trail)
		lead = ""
	}
	if !p.at(TokRBrace) {
		return nil, p.parseError("expected '}' to close inline table")
	}
	p.advance()
	p.lex.valueMode = savedValueMode
	return it, nil
}
