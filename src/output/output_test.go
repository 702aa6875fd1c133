package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pyflint/flint/src/lint"
)

func sampleFindings() []lint.Finding {
	return []lint.Finding{
		{File: "b.py", Line: 3, Code: "E501", Module: "linelength", Severity: lint.SeverityWarning, Message: "line too long (90 > 79 characters)"},
		{File: "a.py", Line: 10, Column: 5, Code: "S100", Module: "secrets", Severity: lint.SeverityCritical, Message: "AWS access key"},
		{File: "b.py", Line: 1, Code: "W291", Module: "whitespace", Severity: lint.SeverityInfo, Message: "trailing whitespace"},
	}
}

func TestPrinterGroupsAndOrders(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{Writer: &buf, Color: false}
	p.Print(sampleFindings())

	out := buf.String()
	aIdx := strings.Index(out, "a.py")
	bIdx := strings.Index(out, "b.py")
	if aIdx < 0 || bIdx < 0 || aIdx > bIdx {
		t.Fatalf("files out of order:\n%s", out)
	}
	if !strings.Contains(out, "10:5") {
		t.Errorf("missing line:col location:\n%s", out)
	}
	if !strings.Contains(out, "CRIT") || !strings.Contains(out, "WARN") || !strings.Contains(out, "INFO") {
		t.Errorf("missing severity tags:\n%s", out)
	}
	w291 := strings.Index(out, "W291")
	e501 := strings.Index(out, "E501")
	if w291 < 0 || e501 < 0 || w291 > e501 {
		t.Errorf("findings within b.py not ordered by line:\n%s", out)
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("color codes present with Color=false:\n%s", out)
	}
}

func TestSummaryLine(t *testing.T) {
	line := SummaryLine(3, 1, 1, 1, 12, false)
	for _, want := range []string{"3 findings", "12 files", "1 critical", "1 warning", "1 info"} {
		if !strings.Contains(line, want) {
			t.Errorf("summary %q missing %q", line, want)
		}
	}

	clean := SummaryLine(0, 0, 0, 0, 5, false)
	if !strings.Contains(clean, "clean") {
		t.Errorf("clean summary = %q", clean)
	}
}

func TestBuildReportCounts(t *testing.T) {
	r := BuildReport("1.2.3", sampleFindings(), 12, []string{"linelength", "secrets", "whitespace"})
	if r.Tool != "flint" || r.Version != "1.2.3" || r.Files != 12 {
		t.Errorf("report header = %+v", r)
	}
	if r.Summary.Total != 3 || r.Summary.Critical != 1 || r.Summary.Warnings != 1 || r.Summary.Info != 1 {
		t.Errorf("summary = %+v", r.Summary)
	}
}

func TestBuildReportEmptyFindings(t *testing.T) {
	r := BuildReport("dev", nil, 0, nil)
	var buf bytes.Buffer
	if err := WriteReport(&buf, r, "json"); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	if strings.Contains(buf.String(), `"findings": null`) {
		t.Errorf("empty findings serialized as null:\n%s", buf.String())
	}
}

func TestWriteReportJSONRoundTrip(t *testing.T) {
	r := BuildReport("dev", sampleFindings(), 3, []string{"linelength"})
	var buf bytes.Buffer
	if err := WriteReport(&buf, r, "json"); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded.Findings) != 3 || decoded.Findings[0].Severity != lint.SeverityWarning {
		t.Errorf("decoded = %+v", decoded.Findings)
	}
}

func TestWriteReportYAML(t *testing.T) {
	r := BuildReport("dev", sampleFindings(), 3, []string{"linelength"})
	var buf bytes.Buffer
	if err := WriteReport(&buf, r, "yaml"); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	if !strings.Contains(buf.String(), "tool: flint") {
		t.Errorf("yaml output missing header:\n%s", buf.String())
	}
}

func TestWriteReportUnknownFormat(t *testing.T) {
	if err := WriteReport(&bytes.Buffer{}, Report{}, "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
