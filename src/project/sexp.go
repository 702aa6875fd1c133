package project

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// sexp values: string, int64, float64, bool, Symbol, or []any for lists.

// Symbol is a bare s-expression atom, e.g. `:source-roots` or `nil`.
type Symbol string

type sexpParser struct {
	src []rune
	pos int
}

// parseSexp reads a single s-expression datum from src. Trailing content
// after the datum is an error.
func parseSexp(src string) (any, error) {
	p := &sexpParser{src: []rune(src)}
	p.skipSpace()
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, fmt.Errorf("sexp: trailing content at offset %d", p.pos)
	}
	return v, nil
}

func (p *sexpParser) parseValue() (any, error) {
	if p.pos >= len(p.src) {
		return nil, fmt.Errorf("sexp: unexpected end of input")
	}
	switch c := p.src[p.pos]; {
	case c == '(':
		return p.parseList()
	case c == ')':
		return nil, fmt.Errorf("sexp: unexpected ')' at offset %d", p.pos)
	case c == '"':
		return p.parseString()
	default:
		return p.parseAtom()
	}
}

func (p *sexpParser) parseList() (any, error) {
	p.pos++ // consume '('
	var items []any
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, fmt.Errorf("sexp: missing closing ')'")
		}
		if p.src[p.pos] == ')' {
			p.pos++
			return items, nil
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
}

func (p *sexpParser) parseString() (any, error) {
	p.pos++ // consume opening quote
	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case '"':
			p.pos++
			return b.String(), nil
		case '\\':
			p.pos++
			if p.pos >= len(p.src) {
				return nil, fmt.Errorf("sexp: unterminated escape")
			}
			esc := p.src[p.pos]
			switch esc {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			default:
				b.WriteRune(esc)
			}
			p.pos++
		default:
			b.WriteRune(c)
			p.pos++
		}
	}
	return nil, fmt.Errorf("sexp: unterminated string")
}

func (p *sexpParser) parseAtom() (any, error) {
	start := p.pos
	for p.pos < len(p.src) && !isAtomEnd(p.src[p.pos]) {
		p.pos++
	}
	tok := string(p.src[start:p.pos])
	if tok == "" {
		return nil, fmt.Errorf("sexp: empty atom at offset %d", start)
	}

	switch tok {
	case "t":
		return true, nil
	case "nil":
		return nil, nil
	}
	if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return f, nil
	}
	return Symbol(tok), nil
}

func isAtomEnd(c rune) bool {
	return unicode.IsSpace(c) || c == '(' || c == ')' || c == '"' || c == ';'
}

func (p *sexpParser) skipSpace() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if unicode.IsSpace(c) {
			p.pos++
			continue
		}
		// Comments run to end of line.
		if c == ';' {
			for p.pos < len(p.src) && p.src[p.pos] != '\n' {
				p.pos++
			}
			continue
		}
		return
	}
}
