package modules

import (
	"context"
	"fmt"
	"os"

	"github.com/pyflint/flint/src/lint"
	"github.com/pyflint/flint/src/pysrc"
	"github.com/pyflint/flint/src/style"
)

// Import grouping codes, following the flake8-import-order convention:
// stdlib first, then third-party, then application imports.
const (
	codeImportOrder        = "I100"
	codeMisplacedAppImport = "I202"
)

func init() {
	lint.Register("imports", func() lint.Module { return &importsModule{} })
}

// importsModule checks module-level import grouping against the
// document's application-import-names whitelist. Without a whitelist the
// module has nothing to group by and stays quiet.
type importsModule struct {
	appNames map[string]bool
}

func (m *importsModule) Name() string         { return "imports" }
func (m *importsModule) DefaultEnabled() bool { return true }

func (m *importsModule) ApplyStyle(cfg *style.Config) {
	m.appNames = make(map[string]bool, len(cfg.ApplicationImportNames))
	for _, name := range cfg.ApplicationImportNames {
		m.appNames[name] = true
	}
}

// import groups, in required order
const (
	groupStdlib = iota
	groupThirdParty
	groupApplication
)

func (m *importsModule) group(top string) int {
	switch {
	case m.appNames[top]:
		return groupApplication
	case pysrc.IsStdlib(top):
		return groupStdlib
	default:
		return groupThirdParty
	}
}

func groupName(g int) string {
	switch g {
	case groupStdlib:
		return "standard library"
	case groupThirdParty:
		return "third party"
	default:
		return "application"
	}
}

func (m *importsModule) Check(ctx context.Context, file lint.FileInfo) ([]lint.Finding, error) {
	if len(m.appNames) == 0 {
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
	highest := groupStdlib

	for _, stmt := range pysrc.Imports(lines) {
		top := stmt.TopLevel()
		if top == "" {
			continue // relative import, grouping does not apply
		}
		g := m.group(top)

		if g < highest {
			code := codeImportOrder
			if highest == groupApplication && g != groupApplication {
				code = codeMisplacedAppImport
			}
			if !noqaByLine[stmt.Line].Suppresses(code) {
				findings = append(findings, lint.Finding{
					File:     file.Path,
					Line:     stmt.Line,
					Code:     code,
					Module:   m.Name(),
					Severity: lint.SeverityInfo,
					Message: fmt.Sprintf("%s import %q after %s imports",
						groupName(g), top, groupName(highest)),
				})
			}
			continue
		}
		highest = g
	}
	return findings, nil
}
