package toml

import (
	"fmt"
	"time"

	"github.com/golang-sql/civil"
)

// coerce converts a host Go value into the Item that represents it,
// matching spec.md §6's "coerce(any) Item" mutation entry point. Maps
// become tables (coerceTable) and slices become arrays; nested
// maps/slices recurse.
func coerce(v any) (Item, error) {
	switch val := v.(type) {
	case Item:
		return val, nil
	case int:
		return NewInteger(int64(val)), nil
	case int64:
		return NewInteger(val), nil
	case int32:
		return NewInteger(int64(val)), nil
	case float64:
		return NewFloat(val), nil
	case float32:
		return NewFloat(float64(val)), nil
	case bool:
		return NewBool(val), nil
	case string:
		return NewString(val), nil
	case civil.Date:
		return NewDate(val), nil
	case civil.Time:
		return NewTime(val), nil
	case time.Time:
		return NewDateTime(val), nil
	case []any:
		return coerceArray(val)
	case map[string]any:
		return coerceTable(val)
	default:
		return nil, fmt.Errorf("toml: cannot coerce value of type %T", v)
	}
}

// coerceForSlot coerces value for assignment under name in container,
// choosing Table or InlineTable for a host map depending on what (if
// anything) already occupies that slot, and finalizing the new Table's
// header path since coerceTable itself doesn't know the destination key
// (spec.md §4.8: "mapping→Table (or InlineTable if source was inline)").
func coerceForSlot(container *Container, name string, value any) (Item, error) {
	m, isMap := value.(map[string]any)
	if !isMap {
		return coerce(value)
	}
	if _, wasInline := container.Get(name).(*InlineTableItem); wasInline {
		return coerceInlineTable(m)
	}
	t, err := coerceTable(m)
	if err != nil {
		return nil, err
	}
	t.Path = DottedKey{MakeKey(name)}
	t.Explicit = true
	return t, nil
}

func coerceArray(values []any) (*ArrayItem, error) {
	arr := NewArray()
	for _, v := range values {
		item, err := coerce(v)
		if err != nil {
			return nil, err
		}
		arr.Append(item)
	}
	return arr, nil
}

// coerceTable builds a Table from a host map — the default mapping→Item
// coercion per spec.md §4.8. Its Path/Explicit are left zero for the
// caller to assign once the destination key is known (see setPath);
// coerceInlineTable is used instead when replacing a value that was
// already inline, so the assignment doesn't silently change the
// document's table style.
func coerceTable(values map[string]any) (*TableItem, error) {
	t := &TableItem{trivialItem: trivialItem{trivia: defaultTrivia()}, body: newContainer()}
	for k, v := range values {
		item, err := coerce(v)
		if err != nil {
			return nil, err
		}
		if err := t.body.Append(k, item); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func coerceInlineTable(values map[string]any) (*InlineTableItem, error) {
	it := NewInlineTable()
	for k, v := range values {
		item, err := coerce(v)
		if err != nil {
			return nil, err
		}
		it.Set(k, item)
	}
	return it, nil
}
