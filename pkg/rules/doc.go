// Package rules defines the declarative rule model evaluated against panel
// designs: scoped rules, their gating conditions, the constraint variants they
// carry and the violations they produce.
//
// # Constraints
//
// [Constraint] is a closed sum type. Each kind has its own struct carrying only
// the fields that kind uses, and consumers dispatch with a type switch:
//
//	switch c := c.(type) {
//	case *rules.Spacing:
//	    ...
//	case *rules.CoUsage:
//	    ...
//	}
//
// Optional fields are pointers (or slices tagged omitzero) so an absent field
// stays absent after a decode/encode cycle. Constraints with an unrecognized
// "type" decode to [Unknown] and are re-encoded byte for byte.
//
// # Files
//
// Rule sets are exchanged with the visual rule editor as JSON. [ReadFile] and
// [WriteFile] additionally accept YAML and TOML, converting through the same
// JSON shape.
package rules
