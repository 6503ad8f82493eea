package toml

import "fmt"

// entry is one slot of a Container's body: an optional key (absent for
// pure-trivia slots like a standalone Whitespace or Comment item) paired
// with its Item. Order in body is significant and is exactly source
// order (or insertion order for constructed documents).
type entry struct {
	key  DottedKey // nil for trivia-only slots (Whitespace/Comment/Null)
	item Item
}

// Container is the ordered heart of the document model (spec.md §3): a
// vector of (optional key, Item) slots plus a name-to-slot index for O(1)
// lookup. Deleting an entry leaves a Null tombstone in body so that the
// body positions of the other entries do not shift; index is updated to
// drop the deleted name immediately.
//
// A key may be a single segment (an ordinary "name = value" line, or a
// table header) or, for a dotted key/value line such as "a.b.c = 1",
// every segment of that line recorded as one DottedKey against one
// entry — the intermediate names never get their own Container slot.
// The index is keyed by the full, \x00-joined dotted path so "a.b" and
// "a.c" coexist without collision.
type Container struct {
	body  []entry
	index map[string]int
}

// newContainer returns an empty, ready-to-use Container.
func newContainer() *Container {
	return &Container{index: make(map[string]int)}
}

// Len returns the number of body slots, including trivia-only and
// tombstoned ones.
func (c *Container) Len() int { return len(c.body) }

// at returns the slot at position i.
func (c *Container) at(i int) entry { return c.body[i] }

// Keys returns the live (non-tombstoned) top-level key names in order,
// one per distinct first segment (a dotted entry contributes its first
// segment only).
func (c *Container) Keys() []string {
	seen := make(map[string]bool, len(c.body))
	var out []string
	for _, e := range c.body {
		if e.key == nil {
			continue
		}
		name := e.key[0].Name
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// Contains reports whether name is a live top-level key at this level.
func (c *Container) Contains(name string) bool {
	_, ok := c.index[pathKey([]string{name})]
	return ok
}

// isLastEntry reports whether name's slot is the final live body slot,
// i.e. nothing has been appended to this container since name was added.
// materializeParent uses this to tell an in-order nested-table extension
// (safe) from a genuinely out-of-order re-extension of an earlier table
// after an interposed sibling (unsupported; see materializeParent).
func (c *Container) isLastEntry(name string) bool {
	i, ok := c.index[pathKey([]string{name})]
	return ok && i == len(c.body)-1
}

// Get returns the Item stored under name, or nil if absent.
func (c *Container) Get(name string) Item {
	i, ok := c.index[pathKey([]string{name})]
	if !ok {
		return nil
	}
	return c.body[i].item
}

// GetDotted returns the Item stored under the exact dotted path names.
// A single name is looked up as with Get; for several names only one
// dotted key/value entry whose full segment list equals names matches.
// Nested tables are not descended into (getPath in query.go does that).
func (c *Container) GetDotted(names []string) Item {
	if len(names) == 1 {
		return c.Get(names[0])
	}
	if i, ok := c.index[pathKey(names)]; ok {
		return c.body[i].item
	}
	return nil
}

// KeyPath returns the full segment list stored against the entry whose
// first segment is name: a single-element slice for an ordinary key, or
// every segment of a dotted key/value entry such as "a.b.c = 1".
func (c *Container) KeyPath(name string) []string {
	for _, e := range c.body {
		if e.key != nil && e.key[0].Name == name {
			return e.key.Names()
		}
	}
	return []string{name}
}

// rawAppendKey is rawAppend for a single-segment key, erroring instead
// of silently overwriting when name is already present at this level.
// Used by the parser when materializing implicit table parents.
func (c *Container) rawAppendKey(name string, item Item) error {
	if c.Contains(name) {
		return &MutationError{Kind: KindKeyAlreadyPresent, Key: name}
	}
	c.rawAppend(DottedKey{MakeKey(name)}, item)
	return nil
}

// rawAppend adds a slot with no style-repair: used exclusively by the
// parser, which is already emitting slots in exactly the shape and
// order the source had them (spec.md §4.8 distinguishes this from the
// public, style-repairing Append/Insert used after parsing).
func (c *Container) rawAppend(key DottedKey, item Item) {
	idx := len(c.body)
	c.body = append(c.body, entry{key: key, item: item})
	if key != nil {
		c.index[pathKey(key.Names())] = idx
	}
}

// Append adds a new key/value pair to the container, applying the
// style-repair rules of spec.md §4.8: indentation and a trailing newline
// are synthesized from the last live entry at this level when the item
// doesn't already carry its own. A Table or AoT goes at the end; any
// other item goes before the first Table/AoT slot, so that it is not
// rendered inside that table's section.
func (c *Container) Append(name string, item Item) error {
	if c.Contains(name) {
		return &MutationError{Kind: KindKeyAlreadyPresent, Key: name}
	}
	switch item.(type) {
	case *TableItem, *AoTItem:
	default:
		for i, e := range c.body {
			switch e.item.(type) {
			case *TableItem, *AoTItem:
				return c.InsertAt(i, name, item)
			}
		}
	}
	c.repairTrivia(item)
	key := DottedKey{MakeKey(name)}
	c.rawAppend(key, item)
	return nil
}

// InsertAt inserts a new key/value pair at body position pos, shifting
// later entries down and updating the index.
func (c *Container) InsertAt(pos int, name string, item Item) error {
	if c.Contains(name) {
		return &MutationError{Kind: KindKeyAlreadyPresent, Key: name}
	}
	if pos < 0 || pos > len(c.body) {
		pos = len(c.body)
	}
	c.repairTrivia(item)
	key := DottedKey{MakeKey(name)}
	c.body = append(c.body, entry{})
	copy(c.body[pos+1:], c.body[pos:])
	c.body[pos] = entry{key: key, item: item}
	c.reindex()
	return nil
}

// Remove tombstones the entry for name, preserving its trivia slot as a
// Null item so surrounding blank-line/comment spacing is undisturbed.
func (c *Container) Remove(name string) error {
	i, ok := c.index[pathKey([]string{name})]
	if !ok {
		return &MutationError{Kind: KindNonExistentKey, Key: name}
	}
	c.body[i] = entry{item: &NullItem{trivialItem: trivialItem{trivia: c.body[i].item.(TriviaHolder).Trivia()}}}
	delete(c.index, pathKey([]string{name}))
	return nil
}

// Replace swaps the Item stored under name for item, preserving name's
// position and the old item's trivia (spec.md §4.8 replace-preserving-
// trivia) unless item already carries trivia of its own, i.e. anything
// other than the empty trivia or the default a constructor gives.
func (c *Container) Replace(name string, item Item) error {
	i, ok := c.index[pathKey([]string{name})]
	if !ok {
		return &MutationError{Kind: KindNonExistentKey, Key: name}
	}
	if holder, ok := item.(TriviaHolder); ok {
		tv := holder.Trivia()
		if old, ok := c.body[i].item.(TriviaHolder); ok && (tv == (Trivia{}) || tv == defaultTrivia()) {
			holder.SetTrivia(old.Trivia())
		}
	}
	c.body[i].item = item
	return nil
}

// Rename changes the key name under which an item is stored, keeping
// its position, Item, and trivia untouched. It only applies to
// single-segment keys.
func (c *Container) Rename(oldName, newName string) error {
	i, ok := c.index[pathKey([]string{oldName})]
	if !ok {
		return &MutationError{Kind: KindNonExistentKey, Key: oldName}
	}
	if c.Contains(newName) {
		return &MutationError{Kind: KindKeyAlreadyPresent, Key: newName}
	}
	key := MakeKey(newName)
	c.body[i].key = DottedKey{key}
	delete(c.index, pathKey([]string{oldName}))
	c.index[pathKey([]string{newName})] = i
	return nil
}

// reindex rebuilds index from body, keeping the last slot's position
// when (in pathological constructed documents) a name somehow repeats.
func (c *Container) reindex() {
	c.index = make(map[string]int, len(c.body))
	for i, e := range c.body {
		if e.key != nil {
			if _, isNull := e.item.(*NullItem); !isNull {
				c.index[pathKey(e.key.Names())] = i
			}
		}
	}
}

// repairTrivia synthesizes indentation and trailing newline for an item
// about to be appended/inserted into this container, matching the
// indentation of the last live sibling so a programmatic insertion reads
// as if a human had typed it there (spec.md §4.8).
func (c *Container) repairTrivia(item Item) {
	holder, ok := item.(TriviaHolder)
	if !ok {
		return
	}
	tv := holder.Trivia()
	if tv.Trail == "" {
		tv.Trail = "\n"
	}
	if !tv.hasNewlineTrail() {
		tv.Trail += "\n"
	}
	if tv.Indent == "" {
		tv.Indent = c.lastIndent()
	}
	holder.SetTrivia(tv)
}

func (c *Container) lastIndent() string {
	for i := len(c.body) - 1; i >= 0; i-- {
		switch c.body[i].item.(type) {
		case *WhitespaceItem, *NullItem:
			continue
		}
		if holder, ok := c.body[i].item.(TriviaHolder); ok {
			return holder.Trivia().Indent
		}
	}
	return ""
}

// clone deep-copies the container, including its ordered body and index.
func (c *Container) clone() *Container {
	nc := newContainer()
	nc.body = make([]entry, len(c.body))
	for i, e := range c.body {
		var k DottedKey
		if e.key != nil {
			k = e.key.clone()
		}
		nc.body[i] = entry{key: k, item: e.item.clone()}
	}
	for k, v := range c.index {
		nc.index[k] = v
	}
	return nc
}

// String renders the container's body back to TOML source text, in
// order, including trivia. It does not emit the header of the table that
// owns it; TableItem.render writes that header before calling String.
func (c *Container) String() string {
	var out []byte
	for _, e := range c.body {
		out = appendRendered(out, e)
	}
	return string(out)
}

func appendRendered(out []byte, e entry) []byte {
	item := e.item
	holder, hasTrivia := item.(TriviaHolder)
	if hasTrivia {
		tv := holder.Trivia()
		out = append(out, tv.Indent...)
	}
	// Table and AoT headers own their own key path and, for Table, their
	// own trailing comment/newline trivia (render() interleaves it between
	// the header and the body it precedes); everything else renders its
	// key then lets the generic trivia append below close out the line.
	var ownsTrailingTrivia bool
	switch item.(type) {
	case *TableItem, *AoTItem:
		ownsTrailingTrivia = true
	default:
		if e.key != nil {
			out = append(out, e.key.Render()...)
			out = append(out, e.key[len(e.key)-1].Sep...)
		}
	}
	out = append(out, renderItemBody(item)...)
	if hasTrivia && !ownsTrailingTrivia {
		tv := holder.Trivia()
		out = append(out, tv.CommentWS...)
		out = append(out, tv.Comment...)
		out = append(out, tv.Trail...)
	}
	return out
}

// renderItemBody renders an item's own value text, delegating container
// kinds (Table/AoT/Array/InlineTable) to their own String()-shaped
// rendering defined in items_container.go.
func renderItemBody(item Item) string {
	switch it := item.(type) {
	case *TableItem:
		return it.render()
	case *AoTItem:
		return it.render()
	case *WhitespaceItem, *CommentItem, *NullItem:
		return ""
	default:
		return item.Text()
	}
}

func (e entry) String() string {
	return fmt.Sprintf("entry{key=%v item=%T}", e.key, e.item)
}
