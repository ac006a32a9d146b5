// Package render formats decoded JSON records for terminal display.
//
// Records are indented down to a configurable nesting depth; anything
// deeper is collapsed to a single compact line. This keeps large records
// scannable without flooding the terminal with fully expanded JSON.
package render

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/vvka-141/jlb/pkg/jlb"
)

const indentUnit = "  "

// Renderer turns records into display strings.
type Renderer struct {
	maxDepth int
	color    bool
	styles   Styles
}

// New creates a Renderer that expands values down to maxDepth nesting
// levels. When color is true, headers and object keys are styled with
// the default lipgloss palette.
func New(maxDepth int, color bool) *Renderer {
	return &Renderer{
		maxDepth: maxDepth,
		color:    color,
		styles:   DefaultStyles(),
	}
}

// Header formats the banner shown above a record.
func (r *Renderer) Header(index, line int) string {
	s := fmt.Sprintf("--- Record %d (line %d) ---", index, line)
	if r.color {
		return r.styles.Header.Render(s)
	}
	return s
}

// Errorf formats an error message for the interactive surface.
func (r *Renderer) Errorf(format string, args ...interface{}) string {
	s := fmt.Sprintf(format, args...)
	if r.color {
		return r.styles.Error.Render(s)
	}
	return s
}

// Hint formats secondary guidance text.
func (r *Renderer) Hint(s string) string {
	if r.color {
		return r.styles.Hint.Render(s)
	}
	return s
}

// Record renders a decoded record.
func (r *Renderer) Record(rec jlb.Record) string {
	return r.render(rec, 0)
}

func (r *Renderer) render(v any, depth int) string {
	if depth >= r.maxDepth {
		return compact(v)
	}

	switch val := v.(type) {
	case map[string]any:
		return r.renderObject(val, depth)
	case []any:
		return r.renderArray(val, depth)
	default:
		return compact(v)
	}
}

func (r *Renderer) renderObject(obj map[string]any, depth int) string {
	if len(obj) == 0 {
		return "{}"
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("{\n")
	inner := strings.Repeat(indentUnit, depth+1)
	for i, k := range keys {
		b.WriteString(inner)
		b.WriteString(r.key(k))
		b.WriteString(": ")
		b.WriteString(r.render(obj[k], depth+1))
		if i < len(keys)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(indentUnit, depth))
	b.WriteString("}")
	return b.String()
}

func (r *Renderer) renderArray(arr []any, depth int) string {
	if len(arr) == 0 {
		return "[]"
	}

	var b strings.Builder
	b.WriteString("[\n")
	inner := strings.Repeat(indentUnit, depth+1)
	for i, item := range arr {
		b.WriteString(inner)
		b.WriteString(r.render(item, depth+1))
		if i < len(arr)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(indentUnit, depth))
	b.WriteString("]")
	return b.String()
}

func (r *Renderer) key(k string) string {
	quoted := fmt.Sprintf("%q", k)
	if r.color {
		return r.styles.Key.Render(quoted)
	}
	return quoted
}

// compact serializes v on a single line with no extra whitespace.
// Values come from json.Unmarshal, so re-encoding cannot fail; the
// fallback covers hypothetical future value kinds.
func compact(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// Preview returns a single-line rendering of v truncated to max runes,
// for use in reports and listings.
func Preview(v jlb.Record, max int) string {
	s := compact(v)
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
