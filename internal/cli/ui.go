package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/cabinetry/pkg/rules"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // primary
	colorGreen  = lipgloss.Color("35")  // success
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // errors
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // secondary text
	colorDim    = lipgloss.Color("240") // muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	StyleError   = lipgloss.NewStyle().Foreground(colorRed)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleKey      = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Violations
// =============================================================================

// severityIcon renders the marker for a violation line.
func severityIcon(s rules.Severity) string {
	if s == rules.SeverityError {
		return styleIconError.Render(iconError)
	}
	return styleIconWarning.Render(iconWarning)
}

// writeViolations prints violations grouped by panel, design-wide ones first.
func writeViolations(w io.Writer, vs []rules.Violation) {
	var order []string
	byPanel := make(map[string][]rules.Violation)
	for _, v := range vs {
		if _, ok := byPanel[v.PanelID]; !ok {
			order = append(order, v.PanelID)
		}
		byPanel[v.PanelID] = append(byPanel[v.PanelID], v)
	}
	for _, panel := range order {
		title := "design"
		if panel != "" {
			title = "panel " + panel
		}
		fmt.Fprintln(w, StyleTitle.Render(title))
		for _, v := range byPanel[panel] {
			fmt.Fprintf(w, "  %s %s %s\n", severityIcon(v.Severity), v.Message, StyleDim.Render("["+v.RuleID+"]"))
			if refs := violationRefs(v); refs != "" {
				fmt.Fprintln(w, "    "+StyleDim.Render(refs))
			}
		}
	}
}

// violationRefs lists the entity ids a violation points at.
func violationRefs(v rules.Violation) string {
	var parts []string
	if v.ComponentID != "" {
		parts = append(parts, "component "+v.ComponentID)
	}
	if len(v.ComponentIDs) > 0 {
		parts = append(parts, "components "+strings.Join(v.ComponentIDs, ", "))
	}
	if v.MissingComponentID != "" {
		parts = append(parts, "missing "+v.MissingComponentID)
	}
	if v.RequiredComponentID != "" {
		parts = append(parts, "requires "+v.RequiredComponentID)
	}
	return strings.Join(parts, " · ")
}

// summaryLine renders "2 errors · 1 warning · cached".
func summaryLine(errs, warnings int, cached bool) string {
	status, style := "fresh", styleComputed
	if cached {
		status, style = "cached", styleCached
	}
	parts := []string{
		StyleError.Render(plural(errs, "error")),
		StyleWarning.Render(plural(warnings, "warning")),
		style.Render(status),
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func formatMM(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", v), "0"), ".") + " mm"
}
