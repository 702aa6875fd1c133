package badge

import (
	"strings"
	"testing"

	"github.com/pyflint/flint/src/lint"
)

func TestForFindings(t *testing.T) {
	tests := []struct {
		name      string
		findings  []lint.Finding
		wantValue string
		wantColor string
	}{
		{"clean", nil, "passing", "#4c1"},
		{"info only", []lint.Finding{{Severity: lint.SeverityInfo}}, "passing", "#4c1"},
		{"warnings", []lint.Finding{
			{Severity: lint.SeverityWarning},
			{Severity: lint.SeverityWarning},
		}, "2 warnings", "#dfb317"},
		{"critical wins", []lint.Finding{
			{Severity: lint.SeverityWarning},
			{Severity: lint.SeverityCritical},
		}, "1 critical", "#e05d44"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ForFindings("style", tt.findings)
			if b.Value != tt.wantValue || b.Color != tt.wantColor {
				t.Errorf("badge = %+v, want value %q color %q", b, tt.wantValue, tt.wantColor)
			}
			if b.Label != "style" {
				t.Errorf("label = %q", b.Label)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	eng := New(EstimatedMetrics(11))
	svg := eng.Generate(Badge{Label: "style", Value: "passing", Color: "#4c1"})

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`>style</text>`,
		`>passing</text>`,
		`fill="#4c1"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q:\n%s", want, svg)
		}
	}
	if strings.Contains(svg, "@font-face") {
		t.Errorf("estimated metrics should not embed font data:\n%s", svg)
	}
}

func TestRenderSVGEscapesText(t *testing.T) {
	eng := New(EstimatedMetrics(11))
	svg := eng.Generate(Badge{Label: "a<b", Value: `x&"y"`, Color: "#4c1"})
	if strings.Contains(svg, "a<b") || strings.Contains(svg, `x&"y"`) {
		t.Errorf("unescaped badge text:\n%s", svg)
	}
	if !strings.Contains(svg, "a&lt;b") {
		t.Errorf("missing escaped label:\n%s", svg)
	}
}

func TestEstimatedMetricsWidths(t *testing.T) {
	m := EstimatedMetrics(11)
	narrow := m.TextWidth("iiii")
	wide := m.TextWidth("mmmm")
	if narrow >= wide {
		t.Errorf("narrow %f >= wide %f", narrow, wide)
	}
	if m.TextWidth("") != 0 {
		t.Errorf("empty string width = %f", m.TextWidth(""))
	}
}

func TestDetectFontFormat(t *testing.T) {
	if got := detectFontFormat([]byte("OTTO....")); got != "otf" {
		t.Errorf("OTTO = %q", got)
	}
	if got := detectFontFormat([]byte{0, 1, 0, 0}); got != "ttf" {
		t.Errorf("ttf magic = %q", got)
	}
	if got := detectFontFormat([]byte{0}); got != "ttf" {
		t.Errorf("short data = %q", got)
	}
}
