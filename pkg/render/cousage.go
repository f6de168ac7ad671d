package render

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/cabinetry/pkg/design"
	"github.com/matzehuels/cabinetry/pkg/rules"
)

// Options configures co-usage graph rendering.
type Options struct {
	// Missing holds required catalog ids that a check reported absent.
	Missing map[string]bool

	// IncludeDisabled also draws requirements of disabled rules, greyed out.
	IncludeDisabled bool
}

// MissingFrom collects the required ids named by co-usage violations.
func MissingFrom(vs []rules.Violation) map[string]bool {
	missing := make(map[string]bool)
	for _, v := range vs {
		if v.Kind != rules.KindCoUsage {
			continue
		}
		if v.MissingComponentID != "" {
			missing[v.MissingComponentID] = true
		}
		if v.RequiredComponentID != "" {
			missing[v.RequiredComponentID] = true
		}
		for _, id := range v.ComponentIDs {
			missing[id] = true
		}
	}
	return missing
}

type edge struct {
	from, to string
	legacy   bool
	disabled bool
}

// CoUsageDOT returns the co-usage graph in DOT format.
func CoUsageDOT(catalog *design.Catalog, rs []rules.Rule, opts Options) string {
	var edges []edge
	ruleNodes := make(map[string]string)
	for _, r := range rs {
		if !r.Enabled && !opts.IncludeDisabled {
			continue
		}
		for _, c := range r.Constraints {
			cu, ok := c.(*rules.CoUsage)
			if !ok {
				continue
			}
			from := r.ComponentID
			if r.Scope != rules.ScopeComponent || from == "" {
				from = "rule:" + r.ID
				ruleNodes[from] = ruleLabel(r)
			}
			for _, req := range cu.RequiredComponentIDs {
				edges = append(edges, edge{from: from, to: req, disabled: !r.Enabled})
			}
		}
	}
	if catalog != nil {
		for _, comp := range catalog.Components {
			for _, req := range comp.RequiredComponents {
				edges = append(edges, edge{from: comp.ID, to: req, legacy: true})
			}
		}
	}

	var nodes []string
	for _, e := range edges {
		for _, id := range []string{e.from, e.to} {
			if !slices.Contains(nodes, id) {
				nodes = append(nodes, id)
			}
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph CoUsage {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\"];\n")
	buf.WriteString("\n")

	for _, id := range nodes {
		var attrs []string
		if label, ok := ruleNodes[id]; ok {
			attrs = append(attrs, fmt.Sprintf("label=%q", label), "shape=note", "fillcolor=lightyellow")
		} else {
			attrs = append(attrs, fmt.Sprintf("label=%q", nodeLabel(catalog, id)))
			if opts.Missing[id] {
				attrs = append(attrs, "color=red", "fontcolor=red")
			}
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range edges {
		var attrs []string
		if e.legacy {
			attrs = append(attrs, "style=dashed")
		}
		if e.disabled {
			attrs = append(attrs, "color=grey")
		} else if opts.Missing[e.to] {
			attrs = append(attrs, "color=red")
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.from, e.to)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.from, e.to, strings.Join(attrs, ", "))
		}
	}
	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(catalog *design.Catalog, id string) string {
	name := catalog.Name(id)
	if name == id {
		return id
	}
	return name + "\n" + id
}

func ruleLabel(r rules.Rule) string {
	label := r.Name
	if label == "" {
		label = r.ID
	}
	switch {
	case r.Scope == rules.ScopePanel && r.PanelID != "":
		return label + "\n(panel " + r.PanelID + ")"
	case r.Scope == rules.ScopePanel:
		return label + "\n(every panel)"
	}
	return label + "\n(design)"
}
