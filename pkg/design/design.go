package design

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/cabinetry/pkg/errors"
)

// Design is one cabinet: its panels, the catalog it draws from, and the
// placements currently on the panels.
//
// Library holds panel templates that rules may reference by id (gap rules
// written against a library panel apply to design panels of the same width).
type Design struct {
	Panels     []Panel           `json:"panels"`
	Library    []Panel           `json:"library,omitempty"`
	Catalog    *Catalog          `json:"catalog"`
	Placements []CanvasComponent `json:"placements"`
}

// Panel returns the design panel with the given id.
func (d *Design) Panel(id string) (Panel, bool) {
	return FindPanel(d.Panels, id)
}

// DeletePanel removes a panel and every placement on it.
func (d *Design) DeletePanel(id string) {
	d.Panels, d.Placements = DeletePanel(d.Panels, d.Placements, id)
}

// DeletePanel returns panels without id and placements without those that
// referenced it. The inputs are not modified.
func DeletePanel(panels []Panel, placements []CanvasComponent, id string) ([]Panel, []CanvasComponent) {
	outPanels := make([]Panel, 0, len(panels))
	for _, p := range panels {
		if p.ID != id {
			outPanels = append(outPanels, p)
		}
	}
	outPlacements := make([]CanvasComponent, 0, len(placements))
	for _, p := range placements {
		if p.PanelID != id {
			outPlacements = append(outPlacements, p)
		}
	}
	return outPanels, outPlacements
}

// Validate checks panel ids, panel dimensions and the catalog.
func (d *Design) Validate() error {
	seen := make(map[string]bool, len(d.Panels))
	for _, p := range d.Panels {
		if seen[p.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate panel id %q", p.ID)
		}
		seen[p.ID] = true
		if p.Width <= 0 || p.Height <= 0 {
			return errors.New(errors.ErrCodeInvalidInput, "panel %s: width and height must be positive", p.ID)
		}
	}
	placed := make(map[string]bool, len(d.Placements))
	for _, pl := range d.Placements {
		if placed[pl.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate placement id %q", pl.ID)
		}
		placed[pl.ID] = true
	}
	return d.Catalog.Validate()
}

// ReadDesign decodes a JSON design from r.
// A missing catalog decodes to an empty one.
func ReadDesign(r io.Reader) (*Design, error) {
	var d Design
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode design")
	}
	if d.Catalog == nil {
		d.Catalog = NewCatalog(nil, nil)
	}
	return &d, nil
}

// ReadDesignFile reads a JSON design file.
func ReadDesignFile(path string) (*Design, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDesign(f)
}

// WriteDesign encodes d as indented JSON.
func WriteDesign(d *Design, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// WriteDesignFile writes d to path as indented JSON.
func WriteDesignFile(d *Design, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteDesign(d, f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
