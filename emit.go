package toml

import "sort"

// EmitOptions controls how Emit renders a Document, beyond the default
// of reproducing the source (or constructed layout) verbatim.
type EmitOptions struct {
	// SortKeys re-orders every container's key/value entries
	// lexicographically before rendering, recursively. Tables and arrays
	// of tables are not sorted: they keep their relative order, after the
	// key/value entries of their level, matching the tomlkit `sort_keys`
	// dump option this is grounded on.
	SortKeys bool
}

// Emit renders doc to TOML source text honoring opts. With the zero
// value of EmitOptions it is identical to Dumps/Document.String.
func Emit(doc *Document, opts EmitOptions) string {
	if !opts.SortKeys {
		return doc.String()
	}
	sorted := doc.clone()
	sortContainerKeys(sorted.root)
	return sorted.String()
}

func (d *Document) clone() *Document {
	nd := newDocument()
	nd.root = d.root.clone()
	for k, v := range d.aots {
		nd.aots[k] = v.clone().(*AoTItem)
	}
	return nd
}

// sortContainerKeys reorders c's body so that key/value entries are in
// lexicographic key order, followed by the Table/AoT entries in their
// original order, preserving the trivia-only slots
// (Whitespace/Comment/Null) in their original relative position among
// the keyed entries that immediately precede them. Nested tables are
// sorted recursively.
func sortContainerKeys(c *Container) {
	type block struct {
		name    string
		entries []entry
	}
	var blocks []block
	var leading []entry
	for _, e := range c.body {
		if e.key == nil {
			if len(blocks) == 0 {
				leading = append(leading, e)
			} else {
				blocks[len(blocks)-1].entries = append(blocks[len(blocks)-1].entries, e)
			}
			continue
		}
		blocks = append(blocks, block{name: e.key[0].Name, entries: []entry{e}})
	}
	isSection := func(b block) bool {
		switch b.entries[0].item.(type) {
		case *TableItem, *AoTItem:
			return true
		}
		return false
	}
	sort.SliceStable(blocks, func(i, j int) bool {
		si, sj := isSection(blocks[i]), isSection(blocks[j])
		if si || sj {
			return !si && sj
		}
		return blocks[i].name < blocks[j].name
	})

	newBody := make([]entry, 0, len(c.body))
	newBody = append(newBody, leading...)
	for _, b := range blocks {
		newBody = append(newBody, b.entries...)
	}
	c.body = newBody
	c.reindex()

	for _, e := range c.body {
		switch v := e.item.(type) {
		case *TableItem:
			sortContainerKeys(v.body)
		case *InlineTableItem:
			sortContainerKeys(v.body)
		case *AoTItem:
			for _, t := range v.Entries {
				sortContainerKeys(t.body)
			}
		}
	}
}
