package rules

import (
	"fmt"
)

// Field is the quantity a condition compares.
type Field string

// Condition fields.
const (
	FieldComponentCount Field = "componentCount"
	FieldPanelWidth     Field = "panelWidth"
	FieldPanelHeight    Field = "panelHeight"
)

// Operator is a condition comparison.
type Operator string

// Condition operators.
const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "notEquals"
	OpGreaterThan Operator = "greaterThan"
	OpLessThan    Operator = "lessThan"
)

// Condition gates a rule: the rule's constraints are evaluated only when
// every condition holds.
type Condition struct {
	Field    Field    `json:"field"`
	Operator Operator `json:"operator"`
	Value    float64  `json:"value"`
}

// Compare applies the operator to actual and the condition value.
// Unknown operators never hold.
func (c Condition) Compare(actual float64) bool {
	switch c.Operator {
	case OpEquals:
		return actual == c.Value
	case OpNotEquals:
		return actual != c.Value
	case OpGreaterThan:
		return actual > c.Value
	case OpLessThan:
		return actual < c.Value
	}
	return false
}

// Validate checks field and operator.
func (c Condition) Validate() error {
	switch c.Field {
	case FieldComponentCount, FieldPanelWidth, FieldPanelHeight:
	default:
		return fmt.Errorf("unknown field %q", c.Field)
	}
	switch c.Operator {
	case OpEquals, OpNotEquals, OpGreaterThan, OpLessThan:
	default:
		return fmt.Errorf("unknown operator %q", c.Operator)
	}
	return nil
}
