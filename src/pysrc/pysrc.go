// Package pysrc provides line-oriented scanning of Python source: comment
// and string stripping, noqa directives, import statements, and function
// complexity counting. It deliberately stops short of a full grammar —
// the checks it feeds are line-oriented, as in pycodestyle.
package pysrc

import (
	"regexp"
	"strings"
)

// Line is one physical source line after scanning.
type Line struct {
	Num  int    // 1-based
	Raw  string // original text without the newline
	Code string // Raw with string contents blanked and comment removed

	Blank    bool
	Comment  bool // line is only a comment
	InString bool // line lies inside a triple-quoted string

	Noqa *Noqa
}

// Noqa is a "# noqa" suppression directive on a line. An empty Codes list
// suppresses every check on the line.
type Noqa struct {
	Codes []string
}

// Suppresses reports whether the directive silences the given check code.
func (n *Noqa) Suppresses(code string) bool {
	if n == nil {
		return false
	}
	if len(n.Codes) == 0 {
		return true
	}
	for _, c := range n.Codes {
		if strings.EqualFold(c, code) {
			return true
		}
	}
	return false
}

var noqaRe = regexp.MustCompile(`(?i)#\s*noqa(?::\s*([A-Z][0-9]*(?:[,\s]+[A-Z][0-9]*)*))?`)

// parseNoqa extracts a noqa directive from the comment part of a line.
func parseNoqa(comment string) *Noqa {
	m := noqaRe.FindStringSubmatch(comment)
	if m == nil {
		return nil
	}
	if m[1] == "" {
		return &Noqa{}
	}
	codes := strings.FieldsFunc(m[1], func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	return &Noqa{Codes: codes}
}

// Scan splits source into classified lines. String literal contents are
// replaced with spaces in Code so later keyword matching cannot fire
// inside strings; comments are stripped from Code but scanned for noqa.
func Scan(data []byte) []Line {
	raw := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if len(raw) > 0 && raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1] // trailing newline artifact
	}

	lines := make([]Line, 0, len(raw))
	var tripleQuote string // `"""` or `'''` while inside a multi-line string

	for i, text := range raw {
		line := Line{Num: i + 1, Raw: text}
		code, comment, nextTriple := blankStrings(text, tripleQuote)
		line.InString = tripleQuote != ""
		tripleQuote = nextTriple
		line.Code = code

		if comment != "" {
			line.Noqa = parseNoqa(comment)
		}

		trimmed := strings.TrimSpace(text)
		switch {
		case trimmed == "":
			line.Blank = true
		case strings.HasPrefix(trimmed, "#"):
			line.Comment = true
		}

		lines = append(lines, line)
	}
	return lines
}

// blankStrings replaces string literal contents with spaces and splits off
// the comment. openTriple carries multi-line string state between lines.
func blankStrings(text, openTriple string) (code, comment, nextTriple string) {
	var b strings.Builder
	i := 0
	n := len(text)
	triple := openTriple

	for i < n {
		if triple != "" {
			if strings.HasPrefix(text[i:], triple) {
				b.WriteString(triple)
				i += len(triple)
				triple = ""
				continue
			}
			b.WriteByte(' ')
			i++
			continue
		}

		c := text[i]
		switch {
		case c == '#':
			return b.String(), text[i:], ""
		case c == '"' || c == '\'':
			q := string(c)
			if strings.HasPrefix(text[i:], q+q+q) {
				triple = q + q + q
				b.WriteString(triple)
				i += 3
				continue
			}
			// Single-quoted: consume to the closing quote on this line.
			b.WriteByte(c)
			i++
			for i < n {
				if text[i] == '\\' && i+1 < n {
					b.WriteString("  ")
					i += 2
					continue
				}
				if text[i] == c {
					b.WriteByte(c)
					i++
					break
				}
				b.WriteByte(' ')
				i++
			}
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), "", triple
}

// Indent returns the indentation width of a line, with tabs counted to the
// next multiple of 8 as Python does.
func Indent(s string) int {
	w := 0
	for _, c := range s {
		switch c {
		case ' ':
			w++
		case '\t':
			w += 8 - w%8
		default:
			return w
		}
	}
	return w
}
