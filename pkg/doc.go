// Package pkg holds the cabinetry libraries: a rule engine and layout helper
// for electrical cabinet mounting panels.
//
// # Overview
//
// A design is a set of panels, a catalog of components and combinators, and
// placements of catalog items on panels. Rules are declarative bundles of
// constraints, scoped globally, to a panel or to a component. The libraries
// are organized as:
//
//  1. [design], [rules] - the data model and rule file formats
//  2. [geometry] - rectangle overlap, bounds and spacing primitives
//  3. [engine] - evaluates rules into violations; selection filters
//  4. [layout] - gap bands, vertical stacking, capacity and edits
//  5. [pipeline] - layout then evaluation, cached by content hash
//  6. [cache], [observability], [config], [errors] - supporting infrastructure
//  7. [render] - the co-usage requirement graph as DOT or SVG
//
// # Data Flow
//
//	design.json + rules.{json,yaml,toml}
//	         ↓
//	    [layout.ApplyGaps] (gap placements, restack every panel)
//	         ↓
//	    [engine.Evaluate] (rule conditions, then per-kind checks)
//	         ↓
//	    []rules.Violation
//
// Layout edits ([layout.Add], [layout.Reorder], [layout.Remove]) run the
// same stacking and are rejected with coded errors when a panel has no room
// or a required component is absent.
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/cabinetry/pkg/design"
//	    "github.com/matzehuels/cabinetry/pkg/engine"
//	    "github.com/matzehuels/cabinetry/pkg/layout"
//	    "github.com/matzehuels/cabinetry/pkg/rules"
//	)
//
//	d, _ := design.ReadDesignFile("design.json")
//	rs, _ := rules.ReadFile("rules.yaml")
//
//	placements := layout.ApplyGaps(d.Panels, d.Placements, d.Catalog, rs, d.Library)
//	for _, v := range engine.Evaluate(rs, d.Panels, placements, d.Catalog) {
//	    fmt.Println(v.Severity, v.Message)
//	}
//
// [design]: https://pkg.go.dev/github.com/matzehuels/cabinetry/pkg/design
// [rules]: https://pkg.go.dev/github.com/matzehuels/cabinetry/pkg/rules
// [geometry]: https://pkg.go.dev/github.com/matzehuels/cabinetry/pkg/geometry
// [engine]: https://pkg.go.dev/github.com/matzehuels/cabinetry/pkg/engine
// [layout]: https://pkg.go.dev/github.com/matzehuels/cabinetry/pkg/layout
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/cabinetry/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/cabinetry/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/cabinetry/pkg/observability
// [config]: https://pkg.go.dev/github.com/matzehuels/cabinetry/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/cabinetry/pkg/errors
// [render]: https://pkg.go.dev/github.com/matzehuels/cabinetry/pkg/render
// [layout.ApplyGaps]: https://pkg.go.dev/github.com/matzehuels/cabinetry/pkg/layout#ApplyGaps
// [layout.Add]: https://pkg.go.dev/github.com/matzehuels/cabinetry/pkg/layout#Add
// [layout.Reorder]: https://pkg.go.dev/github.com/matzehuels/cabinetry/pkg/layout#Reorder
// [layout.Remove]: https://pkg.go.dev/github.com/matzehuels/cabinetry/pkg/layout#Remove
// [engine.Evaluate]: https://pkg.go.dev/github.com/matzehuels/cabinetry/pkg/engine#Evaluate
package pkg
