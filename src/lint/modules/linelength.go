package modules

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pyflint/flint/src/lint"
	"github.com/pyflint/flint/src/pysrc"
	"github.com/pyflint/flint/src/style"
)

const codeLineTooLong = "E501"

func init() {
	lint.Register("linelength", func() lint.Module {
		return &lineLengthModule{max: style.DefaultMaxLineLength}
	})
}

// lineLengthModule flags physical lines longer than the document's
// max-line-length.
type lineLengthModule struct {
	max int
}

func (m *lineLengthModule) Name() string         { return "linelength" }
func (m *lineLengthModule) DefaultEnabled() bool { return true }

func (m *lineLengthModule) ApplyStyle(cfg *style.Config) {
	if cfg.MaxLineLength > 0 {
		m.max = cfg.MaxLineLength
	}
}

func (m *lineLengthModule) Check(ctx context.Context, file lint.FileInfo) ([]lint.Finding, error) {
	data, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return nil, err
	}

	var findings []lint.Finding
	for _, ln := range pysrc.Scan(data) {
		if ln.Noqa.Suppresses(codeLineTooLong) {
			continue
		}
		// Rune count of the right-stripped line, not bytes: pycodestyle
		// measures characters and leaves trailing blanks to W291.
		length := utf8.RuneCountInString(strings.TrimRight(ln.Raw, " \t\r"))
		if length <= m.max {
			continue
		}
		findings = append(findings, lint.Finding{
			File:     file.Path,
			Line:     ln.Num,
			Column:   m.max + 1,
			Code:     codeLineTooLong,
			Module:   m.Name(),
			Severity: lint.SeverityWarning,
			Message:  fmt.Sprintf("line too long (%d > %d characters)", length, m.max),
		})
	}
	return findings, nil
}
