// Package render draws rule relationships with Graphviz.
//
// # Co-usage Graph
//
// [CoUsageDOT] turns the co-usage requirements of a catalog and rule set
// into a directed graph: an edge A → B means "A requires B". Requirements
// come from component rules (solid edges), panel and global rules (edges from
// a rule node), and the catalog's RequiredComponents lists (dashed edges).
// Requirements that a check found missing are drawn in red.
//
//	dot := render.CoUsageDOT(d.Catalog, rs, render.Options{Missing: missing})
//	svg, err := render.RenderSVG(ctx, dot)
package render
