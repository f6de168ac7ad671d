package design

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/cabinetry/pkg/errors"
)

func testCatalog() *Catalog {
	return NewCatalog(
		[]Component{
			{ID: "mcb", Name: "MCB 16A", Type: "breaker", Width: 18, Height: 90, Specs: map[string]any{"panelSize": 600.0, "poles": "1P"}},
			{ID: "rcd", Name: "RCD 40A", Type: "rcd", Width: 36, Height: 90},
		},
		[]Combinator{
			{ID: "row", Name: "Breaker row", Width: 200, Height: 1, ComponentIDs: []string{"mcb", "rcd"}, Gaps: []float64{5, 10, 5}},
			{ID: "empty", Width: 200, Height: 150, Gaps: []float64{0}},
		},
	)
}

func TestCatalogLookup(t *testing.T) {
	c := testCatalog()

	if comp, ok := c.Component("mcb"); !ok || comp.Name != "MCB 16A" {
		t.Errorf("Component(mcb) = %+v, %v", comp, ok)
	}
	if _, ok := c.Component("row"); ok {
		t.Error("Component(row) should not resolve a combinator")
	}
	if !c.IsCombinator("row") {
		t.Error("IsCombinator(row) = false, want true")
	}
	if c.IsCombinator("mcb") {
		t.Error("IsCombinator(mcb) = true, want false")
	}
	if got := c.Name("rcd"); got != "RCD 40A" {
		t.Errorf("Name(rcd) = %q", got)
	}
	if got := c.Name("unknown"); got != "unknown" {
		t.Errorf("Name(unknown) = %q, want id fallback", got)
	}
}

func TestCatalogSeesEdits(t *testing.T) {
	c := NewCatalog([]Component{{ID: "a", Height: 40}}, nil)
	if _, ok := c.Component("a"); !ok {
		t.Fatal("Component(a) not found")
	}

	c.Components = append(c.Components, Component{ID: "b", Height: 30})
	if _, h, ok := c.Footprint("b"); !ok || h != 30 {
		t.Errorf("Footprint(b) = %v, %v, want 30, true", h, ok)
	}

	c.Components = []Component{{ID: "b", Height: 30}}
	if got, ok := c.Component("a"); ok {
		t.Errorf("Component(a) after removal = %+v, want not found", got)
	}

	c.Combinators = append(c.Combinators, Combinator{ID: "row", ComponentIDs: []string{"b"}, Gaps: []float64{5, 5}})
	if !c.IsCombinator("row") {
		t.Error("IsCombinator(row) = false after append")
	}
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog
	if _, ok := c.Component("x"); ok {
		t.Error("nil catalog should not resolve components")
	}
	if _, _, ok := c.Footprint("x"); ok {
		t.Error("nil catalog should not resolve footprints")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("nil catalog Validate() = %v", err)
	}
}

func TestStackHeight(t *testing.T) {
	c := testCatalog()

	row, _ := c.Combinator("row")
	// 90 + 90 + 5 + 10 + 5, stored height ignored
	if got := c.StackHeight(row); got != 200 {
		t.Errorf("StackHeight(row) = %v, want 200", got)
	}

	empty, _ := c.Combinator("empty")
	if got := c.StackHeight(empty); got != 150 {
		t.Errorf("StackHeight(empty) = %v, want stored 150", got)
	}

	w, h, ok := c.Footprint("row")
	if !ok || w != 200 || h != 200 {
		t.Errorf("Footprint(row) = %v, %v, %v", w, h, ok)
	}
}

func TestCombinatorValidate(t *testing.T) {
	tests := []struct {
		name    string
		cb      Combinator
		wantErr bool
	}{
		{"valid", Combinator{ID: "a", ComponentIDs: []string{"x", "y"}, Gaps: []float64{0, 1, 2}}, false},
		{"empty valid", Combinator{ID: "b", Gaps: []float64{0}}, false},
		{"too few gaps", Combinator{ID: "c", ComponentIDs: []string{"x"}, Gaps: []float64{0}}, true},
		{"too many gaps", Combinator{ID: "d", ComponentIDs: []string{"x"}, Gaps: []float64{0, 1, 2}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cb.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidCombinator) {
				t.Errorf("code = %v", errors.GetCode(err))
			}
		})
	}
}

func TestCatalogValidateDuplicate(t *testing.T) {
	c := NewCatalog([]Component{{ID: "a"}}, []Combinator{{ID: "a", Gaps: []float64{0}}})
	if err := c.Validate(); err == nil {
		t.Error("expected duplicate id error")
	}
}

func TestDesignValidateDuplicatePlacement(t *testing.T) {
	d := &Design{
		Panels:  []Panel{{ID: "p1", Width: 600, Height: 800}},
		Catalog: testCatalog(),
		Placements: []CanvasComponent{
			{ID: "x", ComponentID: "mcb", PanelID: "p1"},
			{ID: "x", ComponentID: "rcd", PanelID: "p1"},
		},
	}
	err := d.Validate()
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("Validate() = %v, want INVALID_INPUT", err)
	}
}

func TestSpec(t *testing.T) {
	c := testCatalog()
	mcb, _ := c.Component("mcb")

	if v, ok := mcb.Spec("panelSize"); !ok || v != "600" {
		t.Errorf("Spec(panelSize) = %q, %v", v, ok)
	}
	if v, ok := mcb.Spec("poles"); !ok || v != "1P" {
		t.Errorf("Spec(poles) = %q, %v", v, ok)
	}
	if _, ok := mcb.Spec("missing"); ok {
		t.Error("Spec(missing) should not be found")
	}
}

func TestPanelSize(t *testing.T) {
	p := Panel{ID: "p1", Width: 600, Height: 800}
	if got := p.SizeKey(); got != "600x800" {
		t.Errorf("SizeKey() = %q", got)
	}
	for size, want := range map[string]bool{"600x800": true, "600": true, "800": false, "": false, "600x1000": false} {
		if got := p.MatchesSize(size); got != want {
			t.Errorf("MatchesSize(%q) = %v, want %v", size, got, want)
		}
	}
}

func TestGapPlacements(t *testing.T) {
	top := NewGap("p1", true, 20)
	if top.ID != "gap-top-p1" || top.Properties.Order != TopGapOrder || !top.IsTopGap() || !top.IsGap() {
		t.Errorf("unexpected top gap: %+v", top)
	}
	if top.GapHeight() != 20 {
		t.Errorf("GapHeight() = %v", top.GapHeight())
	}

	bottom := NewGap("p1", false, 30)
	if bottom.ID != "gap-bottom-p1" || bottom.Properties.Order != BottomGapOrder || !bottom.IsBottomGap() {
		t.Errorf("unexpected bottom gap: %+v", bottom)
	}

	regular := CanvasComponent{ID: "c1", ComponentID: "mcb", PanelID: "p1"}
	if regular.IsGap() || regular.GapHeight() != 0 {
		t.Error("regular placement misclassified as gap")
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	orig := []CanvasComponent{NewGap("p1", true, 20)}
	cp := Clone(orig)
	*cp[0].Properties.GapHeight = 50
	if orig[0].GapHeight() != 20 {
		t.Error("Clone aliased GapHeight pointer")
	}
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
}

func TestDeletePanelCascades(t *testing.T) {
	d := &Design{
		Panels: []Panel{{ID: "p1", Width: 600, Height: 800}, {ID: "p2", Width: 400, Height: 800}},
		Placements: []CanvasComponent{
			{ID: "a", PanelID: "p1"},
			{ID: "b", PanelID: "p2"},
			{ID: "c", PanelID: "p1"},
		},
	}
	d.DeletePanel("p1")

	if len(d.Panels) != 1 || d.Panels[0].ID != "p2" {
		t.Errorf("Panels = %+v", d.Panels)
	}
	if len(d.Placements) != 1 || d.Placements[0].ID != "b" {
		t.Errorf("Placements = %+v", d.Placements)
	}
	if got := TotalWidth(d.Panels); got != 400 {
		t.Errorf("TotalWidth() = %v", got)
	}
}

func TestReadWriteDesign(t *testing.T) {
	input := `{
		"panels": [{"id": "p1", "name": "Main", "width": 600, "height": 800, "depth": 200}],
		"catalog": {
			"components": [{"id": "mcb", "name": "MCB", "type": "breaker", "width": 18, "height": 90, "depth": 70}],
			"combinators": []
		},
		"placements": [{"id": "c1", "componentId": "mcb", "panelId": "p1", "position": {"x": 10, "y": 0}, "rotation": 0, "scale": 1, "properties": {"order": 0}}]
	}`

	d, err := ReadDesign(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadDesign() error: %v", err)
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if _, ok := d.Catalog.Component("mcb"); !ok {
		t.Error("catalog index not rebuilt after decode")
	}
	if p, ok := d.Panel("p1"); !ok || p.Name != "Main" {
		t.Errorf("Panel(p1) = %+v, %v", p, ok)
	}

	var buf bytes.Buffer
	if err := WriteDesign(d, &buf); err != nil {
		t.Fatalf("WriteDesign() error: %v", err)
	}
	again, err := ReadDesign(&buf)
	if err != nil {
		t.Fatalf("re-read error: %v", err)
	}
	if len(again.Placements) != 1 || again.Placements[0].Position.X != 10 {
		t.Errorf("round trip lost placement: %+v", again.Placements)
	}
}

func TestReadDesignWithoutCatalog(t *testing.T) {
	d, err := ReadDesign(strings.NewReader(`{"panels": []}`))
	if err != nil {
		t.Fatalf("ReadDesign() error: %v", err)
	}
	if d.Catalog == nil {
		t.Error("missing catalog should decode to an empty catalog")
	}
}
