package restful

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"
)

// Encode converts the params into a URL query string. Entries with a nil or
// empty-string value are skipped; slice values are stringified element-wise
// and joined with ","; everything else is stringified directly. Keys and
// values are percent-encoded (space as %20, "+" as %2B). Keys are emitted in
// sorted order so the output is deterministic. The result carries no leading
// "?" and is empty when no entries survive filtering.
func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}

	keys := make([]string, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	var builder strings.Builder

	for _, key := range keys {
		value, ok := stringifyParam(p[key])
		if !ok {
			continue
		}

		if builder.Len() > 0 {
			builder.WriteByte('&')
		}

		builder.WriteString(escape(key))
		builder.WriteByte('=')
		builder.WriteString(escape(value))
	}

	return builder.String()
}

// stringifyParam converts a single parameter value to its string form. The
// second return value is false for values that must be dropped (nil and the
// empty string).
func stringifyParam(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		if v == "" {
			return "", false
		}

		return v, true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = fmt.Sprint(rv.Index(i).Interface())
		}

		return strings.Join(parts, ","), true
	}

	return fmt.Sprint(value), true
}

// escape percent-encodes s for use in a query string. url.QueryEscape
// renders spaces as "+"; rewrite them to %20 so the output is unambiguous
// for any server-side decoder.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
