package modules

import (
	"context"
	"fmt"
	"os"

	"github.com/pyflint/flint/src/lint"
	"github.com/pyflint/flint/src/pysrc"
	"github.com/pyflint/flint/src/style"
)

const codeTooComplex = "C901"

func init() {
	lint.Register("complexity", func() lint.Module { return &complexityModule{} })
}

// complexityModule flags functions whose decision-point count exceeds the
// document's max-complexity. Disabled when the document sets no threshold,
// matching flake8's opt-in behavior for mccabe.
type complexityModule struct {
	max int
}

func (m *complexityModule) Name() string         { return "complexity" }
func (m *complexityModule) DefaultEnabled() bool { return true }

func (m *complexityModule) ApplyStyle(cfg *style.Config) { m.max = cfg.MaxComplexity }

func (m *complexityModule) Check(ctx context.Context, file lint.FileInfo) ([]lint.Finding, error) {
	if m.max <= 0 {
		return nil, nil
	}

	data, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return nil, err
	}

	lines := pysrc.Scan(data)
	noqaByLine := make(map[int]*pysrc.Noqa)
	for _, ln := range lines {
		if ln.Noqa != nil {
			noqaByLine[ln.Num] = ln.Noqa
		}
	}

	var findings []lint.Finding
	for _, fn := range pysrc.Functions(lines) {
		if fn.Complexity <= m.max {
			continue
		}
		if noqaByLine[fn.Line].Suppresses(codeTooComplex) {
			continue
		}
		findings = append(findings, lint.Finding{
			File:     file.Path,
			Line:     fn.Line,
			Code:     codeTooComplex,
			Module:   m.Name(),
			Severity: lint.SeverityWarning,
			Message:  fmt.Sprintf("'%s' is too complex (%d > %d)", fn.Name, fn.Complexity, m.max),
		})
	}
	return findings, nil
}
