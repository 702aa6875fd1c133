package modules

import (
	"context"
	"os"
	"sync"

	"github.com/zricethezav/gitleaks/v8/detect"

	"github.com/pyflint/flint/src/lint"
)

const codeSecret = "S100"

func init() {
	lint.Register("secrets", func() lint.Module { return &secretsModule{} })
}

// secretsModule runs the gitleaks default ruleset over scanned sources.
// Style trees carry committed credentials too.
type secretsModule struct {
	once     sync.Once
	initErr  error
	detector *detect.Detector
}

func (m *secretsModule) Name() string         { return "secrets" }
func (m *secretsModule) DefaultEnabled() bool { return true }

func (m *secretsModule) Check(ctx context.Context, file lint.FileInfo) ([]lint.Finding, error) {
	// Lazy-init: building the default detector compiles the full ruleset,
	// which is wasted work when no file reaches this module.
	m.once.Do(func() {
		m.detector, m.initErr = detect.NewDetectorDefaultConfig()
	})
	if m.initErr != nil {
		return nil, m.initErr
	}

	data, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return nil, err
	}

	hits := m.detector.DetectBytes(data)
	if len(hits) == 0 {
		return nil, nil
	}

	findings := make([]lint.Finding, 0, len(hits))
	for _, h := range hits {
		findings = append(findings, lint.Finding{
			File:     file.Path,
			Line:     h.StartLine + 1, // gitleaks is 0-indexed
			Code:     codeSecret,
			Module:   m.Name(),
			Severity: lint.SeverityCritical,
			Message:  h.Description + " (" + h.RuleID + ")",
		})
	}
	return findings, nil
}
