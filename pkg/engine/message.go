package engine

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/cabinetry/pkg/rules"
)

// vars maps template placeholders (without braces) to their values.
//
// Recognized placeholders: {rule} {panel} {component} {other} {count} {min}
// {max} {value} {distance} {missing}. Unknown placeholders are left as-is.
type vars map[string]string

// render expands the constraint's message template, or def when the
// constraint carries none.
func render(c rules.Constraint, def string, v vars) string {
	tmpl := c.Template()
	if tmpl == "" {
		tmpl = def
	}
	pairs := make([]string, 0, 2*len(v))
	for k, val := range v {
		pairs = append(pairs, "{"+k+"}", val)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// vars returns the placeholders every message can use, merged with extra.
func (sc *scope) vars(extra vars) vars {
	v := vars{
		"rule":  sc.rule.Name,
		"panel": sc.panelName(),
	}
	for k, val := range extra {
		v[k] = val
	}
	return v
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// distance rounds to a tenth of a millimeter for display.
func distance(f float64) string {
	return num(math.Round(f*10) / 10)
}
