package geometry_test

import (
	"fmt"

	"github.com/matzehuels/cabinetry/pkg/design"
	"github.com/matzehuels/cabinetry/pkg/geometry"
)

func ExampleRectanglesOverlap() {
	a := geometry.NewRect(0, 0, 50, 50)
	b := geometry.NewRect(40, 0, 50, 50)
	c := geometry.NewRect(50, 0, 50, 50)

	fmt.Println(geometry.RectanglesOverlap(a, b))
	fmt.Println(geometry.RectanglesOverlap(a, c))
	// Output:
	// true
	// false
}

func ExampleCheckOverlaps() {
	catalog := design.NewCatalog([]design.Component{{ID: "box", Width: 50, Height: 50}}, nil)
	placements := []design.CanvasComponent{
		{ID: "a", ComponentID: "box", PanelID: "p1", Position: design.Position{X: 0, Y: 0}},
		{ID: "b", ComponentID: "box", PanelID: "p1", Position: design.Position{X: 40, Y: 0}},
	}

	for _, pair := range geometry.CheckOverlaps(placements, catalog) {
		fmt.Println(pair.A, "overlaps", pair.B)
	}
	// Output:
	// a overlaps b
}
