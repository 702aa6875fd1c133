package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pyflint/flint/src/lint"
)

// Report is the machine-readable result of a scan, serialized as JSON or
// YAML for CI artifact collection.
type Report struct {
	Tool        string         `json:"tool" yaml:"tool"`
	Version     string         `json:"version" yaml:"version"`
	GeneratedAt time.Time      `json:"generated_at" yaml:"generated_at"`
	Files       int            `json:"files" yaml:"files"`
	Modules     []string       `json:"modules" yaml:"modules"`
	Summary     ReportSummary  `json:"summary" yaml:"summary"`
	Findings    []lint.Finding `json:"findings" yaml:"findings"`
}

type ReportSummary struct {
	Total    int `json:"total" yaml:"total"`
	Critical int `json:"critical" yaml:"critical"`
	Warnings int `json:"warnings" yaml:"warnings"`
	Info     int `json:"info" yaml:"info"`
}

// BuildReport assembles a report from scan results.
func BuildReport(version string, findings []lint.Finding, filesScanned int, modules []string) Report {
	r := Report{
		Tool:        "flint",
		Version:     version,
		GeneratedAt: time.Now().UTC(),
		Files:       filesScanned,
		Modules:     modules,
		Findings:    findings,
	}
	for _, f := range findings {
		r.Summary.Total++
		switch f.Severity {
		case lint.SeverityCritical:
			r.Summary.Critical++
		case lint.SeverityWarning:
			r.Summary.Warnings++
		default:
			r.Summary.Info++
		}
	}
	if r.Findings == nil {
		r.Findings = []lint.Finding{}
	}
	return r
}

// WriteReport serializes the report in the requested format. Supported
// formats are "json" and "yaml".
func WriteReport(w io.Writer, r Report, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown report format %q (want json or yaml)", format)
	}
}
