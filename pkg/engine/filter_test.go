package engine

import (
	"slices"
	"testing"

	"github.com/matzehuels/cabinetry/pkg/design"
	"github.com/matzehuels/cabinetry/pkg/errors"
	"github.com/matzehuels/cabinetry/pkg/rules"
)

func TestAllowedComponentTypes(t *testing.T) {
	rs := []rules.Rule{
		rule("g", rules.ScopeGlobal,
			&rules.PanelSizeMapping{PanelSize: ptr("600x800"), ComponentTypes: []string{"breaker", "rcd"}},
			&rules.PanelSizeMapping{PanelSize: ptr("600"), ComponentTypes: []string{"rcd", "terminal"}},
			&rules.PanelSizeMapping{PanelSize: ptr("800x1000"), ComponentTypes: []string{"meter"}},
		),
	}

	types, restricted := AllowedComponentTypes(design.Panel{ID: "p", Width: 600, Height: 800}, rs)
	if !restricted {
		t.Fatal("expected restriction")
	}
	if !slices.Equal(types, []string{"breaker", "rcd", "terminal"}) {
		t.Errorf("types = %v", types)
	}

	if _, restricted := AllowedComponentTypes(design.Panel{ID: "p", Width: 400, Height: 400}, rs); restricted {
		t.Error("unmatched size should not restrict")
	}

	rs[0].Enabled = false
	if _, restricted := AllowedComponentTypes(design.Panel{ID: "p", Width: 600, Height: 800}, rs); restricted {
		t.Error("disabled rule should not restrict")
	}
}

func TestFilterComponents(t *testing.T) {
	rs := []rules.Rule{
		rule("g", rules.ScopeGlobal, &rules.PanelSizeMapping{PanelSize: ptr("600x800"), ComponentTypes: []string{"rcd"}}),
	}
	all := testCatalog().Components

	got := FilterComponents(design.Panel{Width: 600, Height: 800}, rs, all)
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("filtered = %+v", got)
	}
	if got := FilterComponents(design.Panel{Width: 300, Height: 800}, rs, all); len(got) != len(all) {
		t.Errorf("unrestricted panel: got %d components, want %d", len(got), len(all))
	}
}

func TestAllowedCombinators(t *testing.T) {
	combinators := []design.Combinator{
		{ID: "abb-16", Brand: "ABB", Series: "S200", CurrentA: ptr(16.0), Pole: "3P", PanelSize: "600x800", Specs: map[string]any{"ip": "IP65"}},
		{ID: "abb-32", Brand: "ABB", Series: "S200", CurrentA: ptr(32.0), Pole: "1P", PanelSize: "600x800", Specs: map[string]any{"ip": "IP40"}},
		{ID: "se-16", Brand: "Schneider", Series: "iC60", CurrentA: ptr(16.0), Pole: "3P", PanelSize: "800x1000"},
	}
	panel := design.Panel{ID: "p1", Width: 600, Height: 800}

	ids := func(cbs []design.Combinator) []string {
		var out []string
		for _, cb := range cbs {
			out = append(out, cb.ID)
		}
		return out
	}

	tests := []struct {
		name string
		c    rules.Constraint
		want []string
	}{
		{"panel size", &rules.CombinatorPanelSizeMapping{PanelSize: ptr("600x800")}, []string{"abb-16", "abb-32"}},
		{"panel size other panel", &rules.CombinatorPanelSizeMapping{PanelSize: ptr("800x1000")}, []string{"abb-16", "abb-32", "se-16"}},
		{"brand", &rules.CombinatorPropertyMapping{Property: rules.MappingBrand, PropertyValues: []string{"Schneider"}}, []string{"se-16"}},
		{"series", &rules.CombinatorPropertyMapping{Property: rules.MappingSeries, PropertyValues: []string{"S200"}}, []string{"abb-16", "abb-32"}},
		{"current", &rules.CombinatorPropertyMapping{Property: rules.MappingCurrent, PropertyValues: []string{"16"}}, []string{"abb-16", "se-16"}},
		{"pole", &rules.CombinatorPropertyMapping{Property: rules.MappingPole, PropertyValues: []string{"1P"}}, []string{"abb-32"}},
		{"empty values", &rules.CombinatorPropertyMapping{Property: rules.MappingPole, PropertyValues: []string{}}, []string{"abb-16", "abb-32", "se-16"}},
		{"spec", &rules.CombinatorSpecMapping{SpecKey: ptr("ip"), SpecValues: []string{"IP65"}}, []string{"abb-16"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(AllowedCombinators(panel, []rules.Rule{rule("r", rules.ScopeGlobal, tt.c)}, combinators))
			if !slices.Equal(got, tt.want) {
				t.Errorf("allowed = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("conjunction", func(t *testing.T) {
		rs := []rules.Rule{
			rule("brand", rules.ScopeGlobal, &rules.CombinatorPropertyMapping{Property: rules.MappingBrand, PropertyValues: []string{"ABB"}}),
			rule("pole", rules.ScopeGlobal, &rules.CombinatorPropertyMapping{Property: rules.MappingPole, PropertyValues: []string{"3P"}}),
		}
		if got := ids(AllowedCombinators(panel, rs, combinators)); !slices.Equal(got, []string{"abb-16"}) {
			t.Errorf("allowed = %v", got)
		}
	})

	t.Run("panel rule elsewhere", func(t *testing.T) {
		r := rule("r", rules.ScopePanel, &rules.CombinatorPropertyMapping{Property: rules.MappingBrand, PropertyValues: []string{"Schneider"}})
		r.PanelID = "p2"
		if !CombinatorAllowed(panel, []rules.Rule{r}, combinators[0]) {
			t.Error("rule for another panel should not apply")
		}
	})
}

func TestCheckRequiredComponents(t *testing.T) {
	cat := testCatalog()
	r := rule("r", rules.ScopeComponent, &rules.CoUsage{RequiredComponentIDs: []string{"b"}})
	r.ComponentID = "a"
	rs := []rules.Rule{r}

	err := CheckRequiredComponents("a", "p1", nil, cat, rs)
	if !errors.Is(err, errors.ErrCodeMissingRequired) {
		t.Fatalf("err = %v, want missing required", err)
	}
	if !errors.IsRejection(err) {
		t.Error("missing requirement should be a rejection")
	}

	onOther := []design.CanvasComponent{place("c1", "b", "p2", 0, 0)}
	if err := CheckRequiredComponents("a", "p1", onOther, cat, rs); err == nil {
		t.Error("requirement on another panel should not satisfy a component rule")
	}

	onSame := []design.CanvasComponent{place("c1", "b", "p1", 0, 0)}
	if err := CheckRequiredComponents("a", "p1", onSame, cat, rs); err != nil {
		t.Errorf("satisfied: %v", err)
	}

	// Catalog requirements may be met on any panel.
	withX := []design.CanvasComponent{place("c1", "x", "p2", 0, 0)}
	if err := CheckRequiredComponents("needy", "p1", withX, cat, nil); err != nil {
		t.Errorf("catalog requirement met elsewhere: %v", err)
	}
	req, missing := RequiredComponents("needy", "p1", nil, cat, nil)
	if !slices.Equal(req, []string{"x"}) || !slices.Equal(missing, []string{"x"}) {
		t.Errorf("required = %v missing = %v", req, missing)
	}
}
