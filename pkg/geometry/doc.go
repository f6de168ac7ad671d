// Package geometry provides the collision primitives used by the rule engine
// and the layout algorithm.
//
// All coordinates are millimeters. Rectangles are axis-aligned and positioned
// by their top-left corner; y grows downward, matching panel-local placement
// coordinates.
//
// # Primitives
//
//   - [RectanglesOverlap]: strict open-interval overlap (touching edges do not overlap)
//   - [IsWithinBounds]: inclusive containment
//   - [MinEdgeDistance]: approximate edge-to-edge distance (see its doc)
//
// # Placement Scans
//
// The scan functions resolve footprints through a [design.Catalog] and work
// on whole placement sets:
//
//   - [CheckOverlaps], [CheckSpacing]: pairwise O(n²) scans within one panel
//   - [OutOfBoundsComponents]: placements that leave their panel
//   - [IntersectsPanelBounds]: placements reaching into a neighboring panel in
//     the shared global coordinate space
//
// Placements whose catalog entry cannot be resolved are skipped.
package geometry
