package rules

import (
	"encoding/json"
	"reflect"
	"testing"
)

// allKinds exercises every constraint kind, including absent, empty and
// unknown fields.
const allKinds = `[
  {
    "id": "r1",
    "name": "Everything",
    "scope": "panel",
    "panelId": "p1",
    "enabled": true,
    "logic": "and",
    "conditions": [{"field": "panelWidth", "operator": "greaterThan", "value": 400}],
    "constraints": [
      {"type": "overlap"},
      {"type": "bounds", "message": "{component} leaves {panel}"},
      {"type": "spacing", "spacing": 12.5},
      {"type": "spacing"},
      {"type": "count", "min": 1, "max": 10},
      {"type": "count", "max": 3},
      {"type": "dimension", "property": "width", "min": 300, "max": 1200},
      {"type": "co-usage", "requiredComponentIds": ["rcd", "spd"]},
      {"type": "co-usage", "requiredComponentIds": []},
      {"type": "panelSizeMapping", "panelSize": "600x800", "componentTypes": ["breaker", "rcd"]},
      {"type": "combinatorPanelSizeMapping", "panelSize": "600"},
      {"type": "combinatorPanelBrandMapping", "propertyValues": ["ABB"]},
      {"type": "combinatorPanelSeriesMapping", "propertyValues": ["S200", "S800"]},
      {"type": "combinatorPanelCurrentMapping", "propertyValues": ["16", "32"]},
      {"type": "combinatorPanelPoleMapping", "propertyValues": []},
      {"type": "combinatorSpecMapping", "specKey": "ip", "specValues": ["IP65"]},
      {"type": "gap", "placement": "top", "size": 20},
      {"type": "gap", "placement": "bottom", "size": 30, "message": "keep bottom free"},
      {"type": "maxComponentHeight", "automatic": true},
      {"type": "maxComponentHeight", "automatic": false, "height": 650},
      {"type": "noIntersectWithPanelBounds", "panelIds": ["p1", "p2"]},
      {"type": "futureKind", "weird": {"nested": [1, 2, 3]}}
    ]
  },
  {
    "id": "r2",
    "name": "Bare",
    "scope": "global",
    "enabled": false
  }
]`

func normalize(t *testing.T, data []byte) any {
	t.Helper()
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return v
}

func TestRoundTripLossless(t *testing.T) {
	rs, err := Decode([]byte(allKinds))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	out, err := Encode(rs)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	if want, got := normalize(t, []byte(allKinds)), normalize(t, out); !reflect.DeepEqual(want, got) {
		t.Errorf("round trip changed the rule set\nwant: %v\ngot:  %v", want, got)
	}
}

func TestRoundTripKeepsNulls(t *testing.T) {
	in := `[{"id":"r","name":"n","scope":"panel","enabled":true,"constraints":[` +
		`{"type":"count","min":null,"max":3,"message":null},` +
		`{"type":"gap","placement":"top","size":null}]}]`
	rs, err := Decode([]byte(in))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	out, err := Encode(rs)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if want, got := normalize(t, []byte(in)), normalize(t, out); !reflect.DeepEqual(want, got) {
		t.Errorf("round trip dropped nulls\nwant: %v\ngot:  %v", want, got)
	}

	// A field set after decoding replaces its null.
	lo := 1
	rs[0].Constraints[0].(*Count).Min = &lo
	b, err := MarshalConstraint(rs[0].Constraints[0])
	if err != nil {
		t.Fatalf("MarshalConstraint() error: %v", err)
	}
	want := `{"type":"count","min":1,"max":3,"message":null}`
	if string(b) != want {
		t.Errorf("MarshalConstraint() = %s, want %s", b, want)
	}
}

func TestDecodeDispatch(t *testing.T) {
	rs, err := Decode([]byte(allKinds))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	cs := rs[0].Constraints

	if _, ok := cs[0].(*Overlap); !ok {
		t.Errorf("constraint 0 = %T, want *Overlap", cs[0])
	}
	if got := cs[1].Template(); got != "{component} leaves {panel}" {
		t.Errorf("bounds template = %q", got)
	}
	if s, ok := cs[2].(*Spacing); !ok || s.Spacing == nil || *s.Spacing != 12.5 {
		t.Errorf("spacing = %#v", cs[2])
	}
	if s := cs[3].(*Spacing); s.Spacing != nil {
		t.Errorf("absent spacing decoded as %v", *s.Spacing)
	}
	if c := cs[5].(*Count); c.Min != nil || c.Max == nil || *c.Max != 3 {
		t.Errorf("count = %#v", c)
	}
	if c := cs[8].(*CoUsage); c.RequiredComponentIDs == nil || len(c.RequiredComponentIDs) != 0 {
		t.Errorf("empty requiredComponentIds should decode to an empty non-nil slice")
	}
	m := cs[12].(*CombinatorPropertyMapping)
	if m.Property != MappingSeries || m.Kind() != KindCombinatorSeriesMapping {
		t.Errorf("series mapping = %#v kind %s", m, m.Kind())
	}
	g := cs[17].(*Gap)
	if g.Placement == nil || *g.Placement != GapBottom || g.Template() != "keep bottom free" {
		t.Errorf("gap = %#v", g)
	}
	u, ok := cs[21].(*Unknown)
	if !ok || u.Kind() != "futureKind" {
		t.Errorf("constraint 21 = %#v, want *Unknown", cs[21])
	}

	if rs[1].Conditions != nil || rs[1].Constraints != nil {
		t.Error("absent lists should decode to nil")
	}
}

func TestDecodeEnvelope(t *testing.T) {
	rs, err := Decode([]byte(`{"rules": [{"id": "r1", "name": "n", "scope": "global", "enabled": true, "constraints": [{"type": "overlap"}]}]}`))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(rs) != 1 || rs[0].Constraints[0].Kind() != KindOverlap {
		t.Errorf("Decode() = %+v", rs)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"not json", "rules:"},
		{"bad constraint payload", `[{"id": "r", "constraints": [{"type": "spacing", "spacing": "wide"}]}]`},
		{"constraint not object", `[{"id": "r", "constraints": [42]}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.input)); err == nil {
				t.Error("Decode() expected error")
			}
		})
	}
}

func TestMarshalConstraintTypeFirst(t *testing.T) {
	size := 20.0
	top := GapTop
	b, err := MarshalConstraint(&Gap{Placement: &top, Size: &size})
	if err != nil {
		t.Fatalf("MarshalConstraint() error: %v", err)
	}
	want := `{"type":"gap","placement":"top","size":20}`
	if string(b) != want {
		t.Errorf("MarshalConstraint() = %s, want %s", b, want)
	}

	b, err = MarshalConstraint(&Overlap{})
	if err != nil {
		t.Fatalf("MarshalConstraint() error: %v", err)
	}
	if string(b) != `{"type":"overlap"}` {
		t.Errorf("MarshalConstraint(overlap) = %s", b)
	}

	if _, err := MarshalConstraint(&Unknown{Type: "x"}); err == nil {
		t.Error("expected error for empty unknown payload")
	}
}

func TestKindClassification(t *testing.T) {
	for _, k := range []Kind{KindPanelSizeMapping, KindCombinatorSpecMapping, KindCombinatorPoleMapping} {
		if !IsFilter(k) {
			t.Errorf("IsFilter(%s) = false", k)
		}
	}
	for _, k := range []Kind{KindOverlap, KindGap, KindCoUsage} {
		if IsFilter(k) {
			t.Errorf("IsFilter(%s) = true", k)
		}
	}
	if !IsLayout(KindGap) || !IsLayout(KindMaxComponentHeight) || IsLayout(KindBounds) {
		t.Error("IsLayout misclassified")
	}
}
