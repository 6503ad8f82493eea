// Command encoder reads the toml-test tagged JSON representation on
// stdin and writes the equivalent TOML document on stdout, the inverse
// of cmd/decoder, so the module can round-trip through the
// toml-lang/toml-test harness in both directions.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/golang-sql/civil"

	"github.com/styletoml/styletoml"
)

func main() {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading stdin: %v\n", err)
		os.Exit(1)
	}

	var input map[string]any
	if err := json.Unmarshal(data, &input); err != nil {
		fmt.Fprintf(os.Stderr, "error parsing JSON: %v\n", err)
		os.Exit(1)
	}

	doc := toml.NewDocument()
	if err := buildTable(doc.Root(), input); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Print(doc.String())
}

func buildTable(c *toml.Container, data map[string]any) error {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		item, err := untagged(data[k])
		if err != nil {
			return err
		}
		if err := c.Append(k, item); err != nil {
			return err
		}
	}
	return nil
}

// untagged converts one node of the tagged-JSON tree (a {"type","value"}
// leaf, a nested object, or an array) into the matching Item. Nested
// objects become inline tables rather than [header] tables: an inline
// table carries its own key/value rendering on one line, so it needs no
// knowledge of the dotted path leading to it from the document root.
func untagged(v any) (toml.Item, error) {
	switch val := v.(type) {
	case map[string]any:
		if typ, ok := val["type"].(string); ok {
			if s, ok := val["value"].(string); ok {
				return taggedScalar(typ, s)
			}
		}
		it := toml.InlineTable()
		if err := buildInline(it, val); err != nil {
			return nil, err
		}
		return it, nil
	case []any:
		return untaggedArray(val)
	default:
		return nil, fmt.Errorf("encoder: unsupported JSON node %#v", v)
	}
}

func buildInline(it *toml.InlineTableItem, data map[string]any) error {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		item, err := untagged(data[k])
		if err != nil {
			return err
		}
		it.Set(k, item)
	}
	return nil
}

func untaggedArray(elems []any) (toml.Item, error) {
	arr := toml.Array()
	for _, e := range elems {
		item, err := untagged(e)
		if err != nil {
			return nil, err
		}
		arr.Append(item)
	}
	return arr, nil
}

func taggedScalar(typ, value string) (toml.Item, error) {
	switch typ {
	case "string":
		return toml.String(value), nil
	case "integer":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("encoder: invalid integer %q: %w", value, err)
		}
		return toml.Integer(n), nil
	case "float":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("encoder: invalid float %q: %w", value, err)
		}
		return toml.Float(f), nil
	case "bool":
		return toml.Boolean(value == "true"), nil
	case "date-local":
		d, err := civil.ParseDate(value)
		if err != nil {
			return nil, fmt.Errorf("encoder: invalid date %q: %w", value, err)
		}
		return toml.Date(d), nil
	case "time-local":
		t, err := civil.ParseTime(value)
		if err != nil {
			return nil, fmt.Errorf("encoder: invalid time %q: %w", value, err)
		}
		return toml.Time(t), nil
	case "datetime", "datetime-local":
		t, err := time.Parse(time.RFC3339Nano, value)
		if err != nil {
			t, err = time.Parse("2006-01-02T15:04:05.999999999", value)
		}
		if err != nil {
			return nil, fmt.Errorf("encoder: invalid datetime %q: %w", value, err)
		}
		return toml.DateTime(t), nil
	default:
		return nil, fmt.Errorf("encoder: unknown tagged type %q", typ)
	}
}
