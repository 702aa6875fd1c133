// Package badge renders shields.io-compatible SVG status badges for
// scan results.
package badge

import (
	"fmt"

	"github.com/pyflint/flint/src/lint"
)

// Badge defines the content and appearance of a single badge.
type Badge struct {
	Label string // left side text
	Value string // right side text
	Color string // hex color for right side (e.g. "#4c1")
}

// Engine generates SVG badges using a specific font.
type Engine struct {
	metrics *FontMetrics
}

// New creates a badge engine with the given font metrics.
func New(metrics *FontMetrics) *Engine {
	return &Engine{metrics: metrics}
}

// Generate produces an SVG badge string.
func (e *Engine) Generate(b Badge) string {
	return e.renderSVG(b)
}

// ForFindings builds the badge content for a finished scan: the worst
// severity picks the color and the counts become the value text.
func ForFindings(label string, findings []lint.Finding) Badge {
	var critical, warnings int
	for _, f := range findings {
		switch f.Severity {
		case lint.SeverityCritical:
			critical++
		case lint.SeverityWarning:
			warnings++
		}
	}

	switch {
	case critical > 0:
		return Badge{Label: label, Value: fmt.Sprintf("%d critical", critical), Color: "#e05d44"}
	case warnings > 0:
		return Badge{Label: label, Value: fmt.Sprintf("%d warnings", warnings), Color: "#dfb317"}
	default:
		return Badge{Label: label, Value: "passing", Color: "#4c1"}
	}
}
