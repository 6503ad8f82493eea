package toml

// getPath walks names through nested tables/inline tables starting at
// root, returning the Item at the end of the path or nil if any segment
// is missing or not itself a container.
func getPath(root *Container, names []string) Item {
	if len(names) == 0 {
		return nil
	}
	cur := root
	for i, name := range names {
		item := cur.Get(name)
		if item == nil {
			// No single-segment entry at this level; the remainder of
			// the path may instead be one dotted key/value entry stored
			// whole (e.g. "a.b.c = 1" under the table we're already in).
			return cur.GetDotted(names[i:])
		}
		if i == len(names)-1 {
			return item
		}
		next, ok := containerOf(item)
		if !ok {
			return nil
		}
		cur = next
	}
	return nil
}

// containerOf returns the nested Container backing item, if item is a
// table-shaped value (Table or InlineTable).
func containerOf(item Item) (*Container, bool) {
	switch it := item.(type) {
	case *TableItem:
		return it.body, true
	case *InlineTableItem:
		return it.body, true
	}
	return nil, false
}

// resolveParentContainer walks names (a path with the final segment
// already stripped off by the caller) and returns the Container that
// should hold the final segment.
func resolveParentContainer(root *Container, names []string) (*Container, bool) {
	cur := root
	for _, name := range names {
		item := cur.Get(name)
		if item == nil {
			return nil, false
		}
		next, ok := containerOf(item)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// setPath assigns value (a host Go value, coerced via coerce) at the
// dotted path names, materializing intermediate tables as plain
// (non-header) tables the way a dotted key/value assignment would
// (spec.md §6, §7).
func setPath(root *Container, names []string, value any) error {
	if len(names) == 0 {
		return &MutationError{Kind: KindEmptyKey}
	}
	cur := root
	for _, name := range names[:len(names)-1] {
		existing := cur.Get(name)
		if existing == nil {
			t := NewTable(name)
			t.Explicit = false
			if err := cur.Append(name, t); err != nil {
				return err
			}
			cur = t.body
			continue
		}
		next, ok := containerOf(existing)
		if !ok {
			return &MutationError{Kind: KindKeyAlreadyPresent, Key: name}
		}
		cur = next
	}
	last := names[len(names)-1]
	item, err := coerceForSlot(cur, last, value)
	if err != nil {
		return err
	}
	if cur.Contains(last) {
		return cur.Replace(last, item)
	}
	return cur.Append(last, item)
}
