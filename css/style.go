// Package css extracts semantic markers from inline style attribute
// strings: colors, pixel indentation and the custom --en-* declarations the
// source markup uses as feature flags.
package css

import (
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Style holds the declarations of one inline style attribute, keyed by
// lowercased property name. Values keep their raw text form.
type Style map[string]string

// ParseInline parses a semicolon-separated inline declaration list. It never
// fails, malformed declarations are simply dropped.
func ParseInline(style string) Style {
	decls := make(Style)
	if strings.TrimSpace(style) == "" {
		return decls
	}

	input := parse.NewInputString(style)
	parser := css.NewParser(input, true)
	for {
		gt, _, data := parser.Next()
		if gt == css.ErrorGrammar {
			return decls
		}
		if gt != css.DeclarationGrammar && gt != css.CustomPropertyGrammar {
			continue
		}
		var value strings.Builder
		for _, val := range parser.Values() {
			value.Write(val.Data)
		}
		name := strings.ToLower(string(data))
		decls[name] = strings.TrimSpace(value.String())
	}
}

// Get returns the raw declaration value for a property.
func (s Style) Get(name string) (string, bool) {
	v, ok := s[strings.ToLower(name)]
	return v, ok
}

// Marker returns the value of a custom --en-* declaration. Quoted values are
// unquoted.
func (s Style) Marker(name string) (string, bool) {
	v, ok := s.Get(name)
	if !ok {
		return "", false
	}
	return unquote(v), true
}

// HasMarker reports whether a custom declaration is present and not
// explicitly disabled.
func (s Style) HasMarker(name string) bool {
	v, ok := s.Marker(name)
	if !ok {
		return false
	}
	return !strings.EqualFold(v, "false")
}

// PaddingLeftPx returns pixel left indentation, 0 when absent or not
// pixel-valued.
func (s Style) PaddingLeftPx() int {
	v, ok := s.Get("padding-left")
	if !ok {
		v, ok = s.Get("margin-left")
		if !ok {
			return 0
		}
	}
	v = strings.TrimSpace(v)
	if !strings.HasSuffix(v, "px") {
		return 0
	}
	px, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
	if err != nil || px < 0 {
		return 0
	}
	return int(px)
}

// Color returns the foreground color normalized to a destination palette
// identifier, or "" when absent or indistinguishable from the default.
func (s Style) Color() string {
	v, ok := s.Get("color")
	if !ok {
		return ""
	}
	return NormalizeColor(v)
}

// Bold reports a bold font-weight declaration.
func (s Style) Bold() bool {
	v, ok := s.Get("font-weight")
	if !ok {
		return false
	}
	if strings.EqualFold(v, "bold") || strings.EqualFold(v, "bolder") {
		return true
	}
	if w, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
		return w >= 600
	}
	return false
}

// Italic reports an italic font-style declaration.
func (s Style) Italic() bool {
	v, ok := s.Get("font-style")
	return ok && (strings.EqualFold(v, "italic") || strings.EqualFold(v, "oblique"))
}

func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '\'' && v[len(v)-1] == '\'') || (v[0] == '"' && v[len(v)-1] == '"') {
			return v[1 : len(v)-1]
		}
	}
	return v
}
