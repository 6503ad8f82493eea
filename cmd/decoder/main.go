// Command decoder reads TOML on stdin and writes the toml-test tagged
// JSON representation on stdout, so the module's parser can be driven
// through the toml-lang/toml-test harness.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/styletoml/styletoml"
)

func main() {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading stdin: %v\n", err)
		os.Exit(1)
	}

	// toml-test's valid suite includes heterogeneous arrays, which real
	// TOML permits; the library's strict default (spec.md §4.6) would
	// reject those as MixedArrayTypesError, so the conformance harness
	// opts out of that check rather than failing on valid input.
	doc, err := toml.ParseWithOptions(string(data), toml.ParseOptions{AllowMixedArrays: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	result := containerToTagged(doc.Root())

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error marshaling JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(jsonBytes))
}

// containerToTagged walks every live entry of c, translating dotted
// key/value entries and nested tables into a plain map[string]any tree.
func containerToTagged(c *toml.Container) map[string]any {
	root := make(map[string]any)
	for _, name := range c.Keys() {
		item := c.Get(name)
		if item == nil {
			continue
		}
		setNested(root, dottedNames(c, name), valueToTagged(item))
	}
	return root
}

// dottedNames recovers the full segment list for name, which may be a
// single key or the head of a multi-segment dotted entry.
func dottedNames(c *toml.Container, name string) []string {
	return c.KeyPath(name)
}

func setNested(m map[string]any, parts []string, value any) {
	cur := m
	for i, p := range parts {
		if i == len(parts)-1 {
			cur[p] = value
			return
		}
		sub, ok := cur[p].(map[string]any)
		if !ok {
			sub = make(map[string]any)
			cur[p] = sub
		}
		cur = sub
	}
}

func valueToTagged(item toml.Item) any {
	switch v := item.(type) {
	case *toml.StringItem:
		s, _ := v.Decoded()
		return tagged("string", s)
	case *toml.IntegerItem:
		n, err := v.Int64()
		if err != nil {
			return tagged("integer", v.Raw)
		}
		return tagged("integer", strconv.FormatInt(n, 10))
	case *toml.FloatItem:
		return tagged("float", floatTagValue(v))
	case *toml.BoolItem:
		return tagged("bool", v.Text())
	case *toml.DateItem:
		return tagged("date-local", v.Raw)
	case *toml.TimeItem:
		return tagged("time-local", v.Raw)
	case *toml.DateTimeItem:
		if v.HasOffset {
			return tagged("datetime", v.Raw)
		}
		return tagged("datetime-local", v.Raw)
	case *toml.ArrayItem:
		out := make([]any, 0, len(v.Values()))
		for _, el := range v.Values() {
			out = append(out, valueToTagged(el))
		}
		return out
	case *toml.InlineTableItem:
		return containerToTagged(v.Container())
	case *toml.TableItem:
		return containerToTagged(v.Container())
	case *toml.AoTItem:
		out := make([]any, 0, len(v.Entries))
		for _, t := range v.Entries {
			out = append(out, containerToTagged(t.Container()))
		}
		return out
	default:
		return tagged("string", item.Text())
	}
}

func floatTagValue(v *toml.FloatItem) string {
	f, err := v.Float64()
	if err != nil {
		return v.Raw
	}
	switch {
	case v.IsInf && v.Sign > 0:
		return "+inf"
	case v.IsInf:
		return "-inf"
	case v.IsNaN:
		return "nan"
	default:
		s := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	}
}

func tagged(typ, val string) map[string]string {
	return map[string]string{"type": typ, "value": val}
}
