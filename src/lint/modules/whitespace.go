package modules

import (
	"bytes"
	"context"
	"os"
	"strings"

	"github.com/pyflint/flint/src/lint"
	"github.com/pyflint/flint/src/pysrc"
)

// pycodestyle whitespace codes, plus W294 for mixed line endings which
// pycodestyle leaves to the VCS.
const (
	codeTabIndent      = "W191"
	codeTrailingSpace  = "W291"
	codeNoFinalNewline = "W292"
	codeBlankLineSpace = "W293"
	codeMixedEndings   = "W294"
)

func init() {
	lint.Register("whitespace", func() lint.Module { return &whitespaceModule{} })
}

type whitespaceModule struct{}

func (m *whitespaceModule) Name() string         { return "whitespace" }
func (m *whitespaceModule) DefaultEnabled() bool { return true }

func (m *whitespaceModule) Check(ctx context.Context, file lint.FileInfo) ([]lint.Finding, error) {
	data, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	var findings []lint.Finding
	add := func(line, col int, code, msg string) {
		findings = append(findings, lint.Finding{
			File:     file.Path,
			Line:     line,
			Column:   col,
			Code:     code,
			Module:   m.Name(),
			Severity: lint.SeverityInfo,
			Message:  msg,
		})
	}

	lines := pysrc.Scan(data)
	for _, ln := range lines {
		text := strings.TrimSuffix(ln.Raw, "\r")

		if strings.HasPrefix(text, "\t") && !ln.Noqa.Suppresses(codeTabIndent) {
			add(ln.Num, 1, codeTabIndent, "indentation contains tabs")
		}

		trimmed := strings.TrimRight(text, " \t")
		if len(trimmed) < len(text) {
			if ln.Blank {
				if !ln.Noqa.Suppresses(codeBlankLineSpace) {
					add(ln.Num, len(trimmed)+1, codeBlankLineSpace, "whitespace on blank line")
				}
			} else if !ln.Noqa.Suppresses(codeTrailingSpace) {
				add(ln.Num, len(trimmed)+1, codeTrailingSpace, "trailing whitespace")
			}
		}
	}

	if data[len(data)-1] != '\n' {
		add(len(lines), 0, codeNoFinalNewline, "no newline at end of file")
	}

	crlf := bytes.Count(data, []byte("\r\n"))
	lf := bytes.Count(data, []byte("\n")) - crlf
	if crlf > 0 && lf > 0 {
		add(1, 0, codeMixedEndings, "mixed line endings (CRLF and LF)")
	}

	return findings, nil
}
