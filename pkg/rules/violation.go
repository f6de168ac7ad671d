package rules

import "time"

// Severity grades a violation.
type Severity string

// Severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Violation reports a constraint failure against the current design.
// Violations are recomputed on every evaluation; they are never diffed.
type Violation struct {
	ID       string   `json:"id" msgpack:"id"`
	RuleID   string   `json:"ruleId" msgpack:"ruleId"`
	RuleName string   `json:"ruleName" msgpack:"ruleName"`
	Kind     Kind     `json:"kind" msgpack:"kind"`
	Message  string   `json:"message" msgpack:"message"`
	Severity Severity `json:"severity" msgpack:"severity"`
	PanelID  string   `json:"panelId,omitempty" msgpack:"panelId,omitempty"`

	// Offending entity references; which ones are set depends on the kind.
	ComponentID         string   `json:"componentId,omitempty" msgpack:"componentId,omitempty"`
	ComponentIDs        []string `json:"componentIds,omitempty" msgpack:"componentIds,omitempty"`
	MissingComponentID  string   `json:"missingComponentId,omitempty" msgpack:"missingComponentId,omitempty"`
	RequiredComponentID string   `json:"requiredComponentId,omitempty" msgpack:"requiredComponentId,omitempty"`

	Timestamp time.Time `json:"timestamp" msgpack:"timestamp"`
}

// CountBySeverity returns the number of errors and warnings in vs.
func CountBySeverity(vs []Violation) (errs, warnings int) {
	for _, v := range vs {
		switch v.Severity {
		case SeverityError:
			errs++
		case SeverityWarning:
			warnings++
		}
	}
	return errs, warnings
}
