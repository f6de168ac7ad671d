// Package design defines the catalog and placement data model for electrical
// cabinet panels.
//
// # Core Types
//
//   - [Panel]: a rectangular mounting surface; panels sit side by side along X
//     with no gap between them
//   - [Component]: an atomic catalog item with a fixed footprint
//   - [Combinator]: a composite catalog item stacking several components with
//     explicit vertical gaps
//   - [CanvasComponent]: a positioned instance (placement) of a component,
//     combinator or gap sentinel on a panel
//   - [Catalog]: indexed lookup of components and combinators
//   - [Design]: panels, catalog and placements of one cabinet
//
// Catalog entries are immutable once placed. Placements are plain values; the
// layout package computes new placement slices rather than mutating them.
//
// # Gap Sentinels
//
// A reserved band at the top or bottom of a panel is itself a placement whose
// ComponentID is [GapComponentID]. The top band has id "gap-top-<panelId>" and
// order [TopGapOrder]; the bottom band has id "gap-bottom-<panelId>" and order
// [BottomGapOrder], pinning them first and last.
package design
