package engine

import (
	"slices"
	"strings"

	"github.com/matzehuels/cabinetry/pkg/design"
	"github.com/matzehuels/cabinetry/pkg/errors"
	"github.com/matzehuels/cabinetry/pkg/rules"
)

// RequiredComponents returns the catalog ids that must be present before
// componentID can be placed on panelID, and which of them are missing.
//
// Component-scoped co-usage rules targeting componentID require their ids on
// the same panel. The catalog's RequiredComponents list may be satisfied
// anywhere in the design.
func RequiredComponents(componentID, panelID string, placements []design.CanvasComponent, catalog *design.Catalog, rs []rules.Rule) (required, missing []string) {
	onPanel := present(withoutGaps(design.OnPanel(placements, panelID)))
	anywhere := present(withoutGaps(placements))

	add := func(id string, have map[string]bool) {
		if slices.Contains(required, id) {
			return
		}
		required = append(required, id)
		if !have[id] {
			missing = append(missing, id)
		}
	}

	for _, r := range rules.Enabled(rs) {
		if r.Scope != rules.ScopeComponent || r.ComponentID != componentID {
			continue
		}
		for _, c := range r.Constraints {
			if cu, ok := c.(*rules.CoUsage); ok {
				for _, id := range cu.RequiredComponentIDs {
					add(id, onPanel)
				}
			}
		}
	}
	if comp, ok := catalog.Component(componentID); ok {
		for _, id := range comp.RequiredComponents {
			add(id, anywhere)
		}
	}
	return required, missing
}

// CheckRequiredComponents rejects placing componentID on panelID while any
// of its required components is absent.
func CheckRequiredComponents(componentID, panelID string, placements []design.CanvasComponent, catalog *design.Catalog, rs []rules.Rule) error {
	_, missing := RequiredComponents(componentID, panelID, placements, catalog, rs)
	if len(missing) == 0 {
		return nil
	}
	names := make([]string, len(missing))
	for i, id := range missing {
		names[i] = catalog.Name(id)
	}
	return errors.New(errors.ErrCodeMissingRequired, "%s requires %s", catalog.Name(componentID), strings.Join(names, ", "))
}
