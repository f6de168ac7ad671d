// Package engine evaluates rule sets against panel designs.
//
// # Evaluation
//
// [Evaluate] discards disabled rules, partitions the rest by scope and runs
// each rule against the placements it covers:
//
//  1. panel rules, once per panel whose id matches (or for every panel when
//     the rule names none), against that panel's placements
//  2. global rules, once, against every placement, with the first panel as
//     the context for panel-dimension conditions
//  3. component rules, once per panel, against that panel's placements
//
// A rule whose conditions do not all hold is skipped. Otherwise every
// constraint is dispatched to its evaluator and the resulting violations are
// concatenated without de-duplication.
//
// Gap and maxComponentHeight constraints are consumed by the layout package,
// and mapping constraints by the selection filters in this package
// ([AllowedComponentTypes], [AllowedCombinators]); none of them produce
// violations. Layout must be applied before evaluating, since the overlap,
// bounds and spacing evaluators read final positions.
//
// Placements whose catalog entry cannot be resolved are skipped by every
// evaluator; only the bounds evaluator reports placements on missing panels.
package engine
