package badge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// FontMetrics holds glyph widths and, when a real font was loaded, the
// raw bytes for SVG embedding.
type FontMetrics struct {
	name     string           // font family name
	size     float64          // point size
	data     []byte           // raw TTF/OTF bytes, nil for estimated metrics
	advances map[rune]float64 // measured glyph advances (printable ASCII)
	fallback float64          // average width for unmapped runes
}

// TextWidth returns the pixel width of s using the glyph advances.
func (m *FontMetrics) TextWidth(s string) float64 {
	var w float64
	for _, r := range s {
		if adv, ok := m.advances[r]; ok {
			w += adv
		} else {
			w += m.fallback
		}
	}
	return w
}

// FontData returns the raw font bytes, or nil when metrics are estimated.
func (m *FontMetrics) FontData() []byte { return m.data }

// FontName returns the font family name.
func (m *FontMetrics) FontName() string { return m.name }

// FontSize returns the configured point size.
func (m *FontMetrics) FontSize() float64 { return m.size }

// EstimatedMetrics returns width estimates for Verdana-like sans fonts
// without loading any font file. Narrow and wide ASCII glyphs get scaled
// widths; everything else uses the average.
func EstimatedMetrics(size float64) *FontMetrics {
	avg := size * 0.6
	advances := make(map[rune]float64, 95)
	for r := rune(32); r <= 126; r++ {
		switch {
		case strings.ContainsRune("iIl.,:;'|!j", r):
			advances[r] = size * 0.30
		case strings.ContainsRune("ftr() []{}", r):
			advances[r] = size * 0.45
		case strings.ContainsRune("mwMW@", r):
			advances[r] = size * 0.95
		default:
			advances[r] = avg
		}
	}
	return &FontMetrics{
		name:     "Verdana",
		size:     size,
		advances: advances,
		fallback: avg,
	}
}

// LoadFontFile parses a TTF/OTF file and measures glyph advances at the
// given size.
func LoadFontFile(path string, size float64) (*FontMetrics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading font file %s: %w", path, err)
	}

	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font %s: %w", path, err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size: size,
		DPI:  72,
	})
	if err != nil {
		return nil, fmt.Errorf("creating face for %s: %w", path, err)
	}
	defer face.Close()

	advances := make(map[rune]float64, 95)
	var total float64
	var count int
	for r := rune(32); r <= 126; r++ {
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			continue
		}
		px := float64(adv) / 64.0 // fixed.Int26_6 to float64
		advances[r] = px
		total += px
		count++
	}

	fallback := size * 0.6
	if count > 0 {
		fallback = total / float64(count)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	buf := &sfnt.Buffer{}
	if n, err := f.Name(buf, sfnt.NameIDFamily); err == nil && n != "" {
		name = n
	}

	return &FontMetrics{
		name:     name,
		size:     size,
		data:     data,
		advances: advances,
		fallback: fallback,
	}, nil
}

// Metrics resolves font metrics for badge rendering: a configured font
// file when given, estimated Verdana widths otherwise.
func Metrics(fontPath string, size float64) (*FontMetrics, error) {
	if fontPath == "" {
		return EstimatedMetrics(size), nil
	}
	return LoadFontFile(fontPath, size)
}
