package rules

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/cabinetry/pkg/errors"
)

func TestConditionCompare(t *testing.T) {
	tests := []struct {
		op     Operator
		value  float64
		actual float64
		want   bool
	}{
		{OpEquals, 600, 600, true},
		{OpEquals, 600, 601, false},
		{OpNotEquals, 600, 601, true},
		{OpNotEquals, 600, 600, false},
		{OpGreaterThan, 3, 4, true},
		{OpGreaterThan, 3, 3, false},
		{OpLessThan, 3, 2, true},
		{OpLessThan, 3, 3, false},
		{"between", 3, 3, false},
	}

	for _, tt := range tests {
		c := Condition{Field: FieldComponentCount, Operator: tt.op, Value: tt.value}
		if got := c.Compare(tt.actual); got != tt.want {
			t.Errorf("%s %v against %v = %v, want %v", tt.op, tt.value, tt.actual, got, tt.want)
		}
	}
}

func TestRuleValidate(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		wantErr bool
	}{
		{"valid", Rule{ID: "r1", Scope: ScopePanel, Conditions: []Condition{{Field: FieldPanelWidth, Operator: OpEquals}}}, false},
		{"missing id", Rule{Scope: ScopeGlobal}, true},
		{"bad scope", Rule{ID: "r1", Scope: "cabinet"}, true},
		{"bad field", Rule{ID: "r1", Scope: ScopeGlobal, Conditions: []Condition{{Field: "depth", Operator: OpEquals}}}, true},
		{"bad operator", Rule{ID: "r1", Scope: ScopeGlobal, Conditions: []Condition{{Field: FieldPanelWidth, Operator: "~"}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAppliesToPanel(t *testing.T) {
	if !(Rule{}).AppliesToPanel("p1") {
		t.Error("unset panelId should apply everywhere")
	}
	if !(Rule{PanelID: "p1"}).AppliesToPanel("p1") {
		t.Error("matching panelId should apply")
	}
	if (Rule{PanelID: "p2"}).AppliesToPanel("p1") {
		t.Error("other panelId should not apply")
	}
}

func TestEnabledAndConstraintsOf(t *testing.T) {
	size := 20.0
	rs := []Rule{
		{ID: "a", Enabled: true, Constraints: Constraints{&Gap{Size: &size}, &Overlap{}}},
		{ID: "b", Enabled: false, Constraints: Constraints{&Gap{}}},
		{ID: "c", Enabled: true, Constraints: Constraints{&Bounds{}}},
	}

	enabled := Enabled(rs)
	if len(enabled) != 2 || enabled[0].ID != "a" || enabled[1].ID != "c" {
		t.Errorf("Enabled() = %+v", enabled)
	}

	gaps := ConstraintsOf(enabled, KindGap)
	if len(gaps) != 1 || gaps[0].Rule.ID != "a" {
		t.Errorf("ConstraintsOf(gap) = %+v", gaps)
	}
}

func TestCountBySeverity(t *testing.T) {
	errs, warns := CountBySeverity([]Violation{
		{Severity: SeverityError}, {Severity: SeverityWarning}, {Severity: SeverityError},
	})
	if errs != 2 || warns != 1 {
		t.Errorf("CountBySeverity() = %d, %d", errs, warns)
	}
}

func TestFileRoundTrip(t *testing.T) {
	rs, err := Decode([]byte(allKinds))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	want, _ := Encode(rs)

	for _, name := range []string{"rules.json", "rules.yaml", "rules.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := WriteFile(path, rs); err != nil {
				t.Fatalf("WriteFile() error: %v", err)
			}
			back, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile() error: %v", err)
			}
			got, _ := Encode(back)
			if !reflect.DeepEqual(normalize(t, want), normalize(t, got)) {
				t.Errorf("%s round trip changed rules\nwant: %s\ngot:  %s", name, want, got)
			}
		})
	}
}

func TestReadFileYAMLHandwritten(t *testing.T) {
	content := `
- id: gaps
  name: Standard gaps
  scope: panel
  enabled: true
  constraints:
    - type: gap
      placement: top
      size: 20
    - type: maxComponentHeight
      automatic: true
`
	path := filepath.Join(t.TempDir(), "rules.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rs, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if len(rs) != 1 || len(rs[0].Constraints) != 2 {
		t.Fatalf("ReadFile() = %+v", rs)
	}
	g, ok := rs[0].Constraints[0].(*Gap)
	if !ok || *g.Size != 20 || *g.Placement != GapTop {
		t.Errorf("gap = %#v", rs[0].Constraints[0])
	}
}

func TestReadFileRejectsExtension(t *testing.T) {
	_, err := ReadFile("rules.xml")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ReadFile(rules.xml) error = %v, want INVALID_FORMAT", err)
	}
}
