package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/cabinetry/pkg/design"
	"github.com/matzehuels/cabinetry/pkg/rules"
)

var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	detailStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

// =============================================================================
// ViolationListModel - Interactive violation browser
// =============================================================================

// severityFilter cycles between all violations, errors only and warnings only.
type severityFilter int

const (
	filterAll severityFilter = iota
	filterErrors
	filterWarnings
)

func (f severityFilter) String() string {
	switch f {
	case filterErrors:
		return "errors"
	case filterWarnings:
		return "warnings"
	}
	return "all"
}

func (f severityFilter) admits(v rules.Violation) bool {
	switch f {
	case filterErrors:
		return v.Severity == rules.SeverityError
	case filterWarnings:
		return v.Severity == rules.SeverityWarning
	}
	return true
}

// ViolationListModel is the bubbletea model for browsing check results.
type ViolationListModel struct {
	All     []rules.Violation
	Catalog *design.Catalog
	Filter  severityFilter
	Cursor  int
	Offset  int
	Height  int

	visible []rules.Violation
}

// NewViolationListModel creates a browser over vs. The catalog resolves
// component ids to names in the detail pane and may be nil.
func NewViolationListModel(vs []rules.Violation, catalog *design.Catalog) ViolationListModel {
	m := ViolationListModel{All: vs, Catalog: catalog, Height: 12}
	m.visible = vs
	return m
}

// Visible returns the violations passing the current filter.
func (m ViolationListModel) Visible() []rules.Violation {
	return m.visible
}

func (m ViolationListModel) Init() tea.Cmd {
	return nil
}

func (m ViolationListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.visible)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "tab", "f":
			m.Filter = (m.Filter + 1) % 3
			m.visible = m.visible[:0:0]
			for _, v := range m.All {
				if m.Filter.admits(v) {
					m.visible = append(m.visible, v)
				}
			}
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		// Leave room for the title, help line and detail pane.
		m.Height = max(msg.Height-14, 5)
	}
	return m, nil
}

func (m ViolationListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Violations"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render("showing " + m.Filter.String()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  tab filter  q quit"))
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		b.WriteString(listDimStyle.Render("  nothing to show"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.visible))
	var rows [][]string
	for i := m.Offset; i < end; i++ {
		v := m.visible[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		panel := v.PanelID
		if panel == "" {
			panel = "—"
		}
		rows = append(rows, []string{cursor, string(v.Severity), panel, v.RuleName, truncate(v.Message, 60)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Severity", "Panel", "Rule", "Message").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 { // header
				return listHeaderStyle
			}
			idx := m.Offset + row
			if idx >= len(m.visible) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col == 1 {
				if m.visible[idx].Severity == rules.SeverityError {
					base = base.Foreground(colorRed)
				} else {
					base = base.Foreground(colorYellow)
				}
			}
			if idx == m.Cursor {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(detailStyle.Render(m.detail(m.visible[m.Cursor])))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.visible))))
	return b.String()
}

// detail renders the selected violation with component names resolved.
func (m ViolationListModel) detail(v rules.Violation) string {
	lines := []string{
		StyleValue.Render(v.Message),
		StyleDim.Render(fmt.Sprintf("rule %s (%s) · %s", v.RuleID, v.RuleName, v.Kind)),
	}
	name := func(id string) string {
		if n := m.Catalog.Name(id); n != id {
			return fmt.Sprintf("%s (%s)", n, id)
		}
		return id
	}
	if v.ComponentID != "" {
		lines = append(lines, "component: "+name(v.ComponentID))
	}
	for _, id := range v.ComponentIDs {
		lines = append(lines, "involves: "+name(id))
	}
	if v.MissingComponentID != "" {
		lines = append(lines, StyleError.Render("missing: "+name(v.MissingComponentID)))
	}
	if v.RequiredComponentID != "" {
		lines = append(lines, StyleError.Render("requires: "+name(v.RequiredComponentID)))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
