// Package layout stacks placements vertically inside panels.
//
// Within a panel, non-gap placements are ordered by Properties.Order and
// stacked top to bottom, each centered horizontally. Consecutive items are
// separated by [Spacing] millimeters, except two adjacent combinators,
// which abut. Gap placements are pinned: the top gap sits at y=0 with order
// -1 and pushes the stack down by its height; the bottom gap follows the
// last item with order 9999.
//
// Every operation returns a new placement slice and leaves its input
// untouched. Callers commit the result and only then evaluate rules, since
// the geometric evaluators read final positions.
//
// # Operations
//
//   - [ApplyGaps] reconciles gap placements with the gap constraints of a
//     rule set and restacks every panel
//   - [Add] checks capacity and co-usage, then appends a placement
//   - [Reorder] moves a placement to a new vertical center
//   - [Remove] deletes a placement and closes the hole
//
// [AvailableHeight] and [CheckCapacity] implement the pre-flight height
// check, and [CombinatorSlots] positions the components inside a combinator.
package layout
