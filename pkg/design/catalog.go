package design

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/cabinetry/pkg/errors"
)

// Component is an atomic catalog entry.
type Component struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
	Color  string  `json:"color,omitempty"`

	// Specs holds free-form string or number attributes (e.g. "panelSize").
	Specs map[string]any `json:"specs,omitempty"`

	// RequiredComponents is the legacy co-usage list: ids that must be present
	// somewhere in the design whenever this component is used.
	RequiredComponents []string `json:"requiredComponents,omitempty"`
}

// Spec returns the spec value for key formatted as a string.
func (c Component) Spec(key string) (string, bool) {
	return specString(c.Specs, key)
}

// Combinator is a composite catalog entry: an ordered vertical stack of
// components separated by gaps.
//
// Gaps has one more element than ComponentIDs: the space before the first
// component, between each pair, and after the last one.
type Combinator struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Width        float64   `json:"width"`
	Height       float64   `json:"height"`
	Depth        float64   `json:"depth"`
	ComponentIDs []string  `json:"componentIds"`
	Gaps         []float64 `json:"gaps"`

	// Classification attributes, read only by selection filters.
	Brand     string         `json:"brand,omitempty"`
	Series    string         `json:"series,omitempty"`
	CurrentA  *float64       `json:"currentA,omitempty"`
	Pole      string         `json:"pole,omitempty"`
	PanelSize string         `json:"panelSize,omitempty"`
	Specs     map[string]any `json:"specs,omitempty"`
}

// Validate checks the gaps invariant.
func (c Combinator) Validate() error {
	if len(c.Gaps) != len(c.ComponentIDs)+1 {
		return errors.New(errors.ErrCodeInvalidCombinator,
			"combinator %s: %d gaps for %d components (want %d)",
			c.ID, len(c.Gaps), len(c.ComponentIDs), len(c.ComponentIDs)+1)
	}
	return nil
}

// Spec returns the spec value for key formatted as a string.
func (c Combinator) Spec(key string) (string, bool) {
	return specString(c.Specs, key)
}

// Current returns the rated current formatted as a string, or "" if unset.
func (c Combinator) Current() string {
	if c.CurrentA == nil {
		return ""
	}
	return strconv.FormatFloat(*c.CurrentA, 'f', -1, 64)
}

// Catalog holds the components and combinators a design can place.
// The zero value and a nil *Catalog are valid empty catalogs.
//
// Lookups scan the slices, so edits to Components or Combinators are seen
// immediately and concurrent reads never write.
type Catalog struct {
	Components  []Component  `json:"components"`
	Combinators []Combinator `json:"combinators"`
}

// NewCatalog creates a catalog.
func NewCatalog(components []Component, combinators []Combinator) *Catalog {
	return &Catalog{Components: components, Combinators: combinators}
}

// Component looks up a component by id.
func (c *Catalog) Component(id string) (Component, bool) {
	if c == nil {
		return Component{}, false
	}
	for _, comp := range c.Components {
		if comp.ID == id {
			return comp, true
		}
	}
	return Component{}, false
}

// Combinator looks up a combinator by id.
func (c *Catalog) Combinator(id string) (Combinator, bool) {
	if c == nil {
		return Combinator{}, false
	}
	for _, cb := range c.Combinators {
		if cb.ID == id {
			return cb, true
		}
	}
	return Combinator{}, false
}

// IsCombinator reports whether id names a combinator.
func (c *Catalog) IsCombinator(id string) bool {
	_, ok := c.Combinator(id)
	return ok
}

// Name returns the display name of a component or combinator, falling back
// to the id itself.
func (c *Catalog) Name(id string) string {
	if comp, ok := c.Component(id); ok && comp.Name != "" {
		return comp.Name
	}
	if cb, ok := c.Combinator(id); ok && cb.Name != "" {
		return cb.Name
	}
	return id
}

// StackHeight returns the height a combinator occupies when stacked: the sum
// of its resolvable contained component heights plus all gaps. The stored
// Height is used only when nothing can be computed.
func (c *Catalog) StackHeight(cb Combinator) float64 {
	var h float64
	for _, id := range cb.ComponentIDs {
		if comp, ok := c.Component(id); ok {
			h += comp.Height
		}
	}
	for _, g := range cb.Gaps {
		h += g
	}
	if h == 0 {
		return cb.Height
	}
	return h
}

// Footprint returns the width and height of a catalog item.
// Components use their stored dimensions; combinators use [Catalog.StackHeight].
func (c *Catalog) Footprint(id string) (width, height float64, ok bool) {
	if comp, found := c.Component(id); found {
		return comp.Width, comp.Height, true
	}
	if cb, found := c.Combinator(id); found {
		return cb.Width, c.StackHeight(cb), true
	}
	return 0, 0, false
}

// Validate checks every combinator and reports duplicate ids.
func (c *Catalog) Validate() error {
	if c == nil {
		return nil
	}
	seen := make(map[string]bool, len(c.Components)+len(c.Combinators))
	for _, comp := range c.Components {
		if seen[comp.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate catalog id %q", comp.ID)
		}
		seen[comp.ID] = true
	}
	for _, cb := range c.Combinators {
		if seen[cb.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate catalog id %q", cb.ID)
		}
		seen[cb.ID] = true
		if err := cb.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func specString(specs map[string]any, key string) (string, bool) {
	v, ok := specs[key]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	default:
		return fmt.Sprint(t), true
	}
}
