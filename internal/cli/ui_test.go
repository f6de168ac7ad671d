package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/cabinetry/pkg/rules"
)

func TestWriteViolationsGroupsByPanel(t *testing.T) {
	vs := []rules.Violation{
		{RuleID: "r1", Message: "A overlaps B", Severity: rules.SeverityError, PanelID: "p1", ComponentIDs: []string{"a", "b"}},
		{RuleID: "r2", Message: "missing PE", Severity: rules.SeverityError, MissingComponentID: "PE"},
		{RuleID: "r3", Message: "too close", Severity: rules.SeverityWarning, PanelID: "p1"},
	}
	var buf bytes.Buffer
	writeViolations(&buf, vs)
	out := buf.String()

	if strings.Count(out, "panel p1") != 1 {
		t.Errorf("panel p1 should head one group:\n%s", out)
	}
	if !strings.Contains(out, "design") || !strings.Contains(out, "missing PE") {
		t.Errorf("design-wide group missing:\n%s", out)
	}
	if !strings.Contains(out, "components a, b") {
		t.Errorf("refs missing:\n%s", out)
	}
}

func TestFormatMM(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{780, "780 mm"},
		{12.5, "12.5 mm"},
		{0, "0 mm"},
		{100, "100 mm"},
		{0.04, "0 mm"},
	}
	for _, tt := range tests {
		if got := formatMM(tt.in); got != tt.want {
			t.Errorf("formatMM(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPlural(t *testing.T) {
	if got := plural(1, "error"); got != "1 error" {
		t.Errorf("plural(1) = %q", got)
	}
	if got := plural(3, "warning"); got != "3 warnings" {
		t.Errorf("plural(3) = %q", got)
	}
}
