package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/matzehuels/cabinetry/pkg/buildinfo"
	"github.com/matzehuels/cabinetry/pkg/design"
	"github.com/matzehuels/cabinetry/pkg/errors"
	"github.com/matzehuels/cabinetry/pkg/pipeline"
	"github.com/matzehuels/cabinetry/pkg/render"
	"github.com/matzehuels/cabinetry/pkg/rules"
)

const contentTypeMsgpack = "application/msgpack"

// request is the body shared by every POST endpoint: a full design plus
// the rule set, and the arguments of the specific operation.
type request struct {
	design.Design
	Rules []rules.Rule `json:"rules"`

	PanelID     string   `json:"panelId,omitempty"`
	ComponentID string   `json:"componentId,omitempty"`
	PlacementID string   `json:"placementId,omitempty"`
	Y           *float64 `json:"y,omitempty"`

	SkipLayout      bool   `json:"skipLayout,omitempty"`
	Refresh         bool   `json:"refresh,omitempty"`
	Format          string `json:"format,omitempty"`
	Highlight       bool   `json:"highlight,omitempty"`
	IncludeDisabled bool   `json:"includeDisabled,omitempty"`
}

func (req *request) input() pipeline.Input {
	return pipeline.Input{Design: &req.Design, Rules: req.Rules}
}

// decode reads and validates the request body.
func decode(r *http.Request) (*request, error) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body")
	}
	if err := req.input().Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// respond writes v as msgpack when the client asks for it, JSON otherwise.
func respond(w http.ResponseWriter, r *http.Request, v any) {
	if !strings.Contains(r.Header.Get("Accept"), contentTypeMsgpack) {
		writeJSON(w, http.StatusOK, v)
		return
	}
	w.Header().Set("Content-Type", contentTypeMsgpack)
	w.WriteHeader(http.StatusOK)
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	_ = enc.Encode(v)
}

type placementsResponse struct {
	Placements  []design.CanvasComponent `json:"placements"`
	PlacementID string                   `json:"placementId,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": buildinfo.Version,
		"build":   buildinfo.Get(),
	})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	req, err := decode(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.runner.Check(r.Context(), req.input(), pipeline.Options{
		SkipLayout: req.SkipLayout,
		Refresh:    req.Refresh,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respond(w, r, result)
}

func (s *Server) handleGaps(w http.ResponseWriter, r *http.Request) {
	req, err := decode(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	d := pipeline.ApplyGaps(&req.Design, req.Rules)
	respond(w, r, placementsResponse{Placements: d.Placements})
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	req, err := decode(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.PanelID == "" || req.ComponentID == "" {
		s.writeError(w, r, badRequest("panelId and componentId are required"))
		return
	}
	id := req.PlacementID
	if id == "" {
		id = uuid.NewString()
	}
	d, err := pipeline.AddComponent(&req.Design, req.Rules, req.PanelID, req.ComponentID, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respond(w, r, placementsResponse{Placements: d.Placements, PlacementID: id})
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	req, err := decode(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.PanelID == "" || req.PlacementID == "" || req.Y == nil {
		s.writeError(w, r, badRequest("panelId, placementId and y are required"))
		return
	}
	d, err := pipeline.MovePlacement(&req.Design, req.PanelID, req.PlacementID, *req.Y)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respond(w, r, placementsResponse{Placements: d.Placements})
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	req, err := decode(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.PanelID == "" || req.PlacementID == "" {
		s.writeError(w, r, badRequest("panelId and placementId are required"))
		return
	}
	d, err := pipeline.RemovePlacement(&req.Design, req.PanelID, req.PlacementID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respond(w, r, placementsResponse{Placements: d.Placements})
}

func (s *Server) handleAllowed(w http.ResponseWriter, r *http.Request) {
	req, err := decode(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	allowed, err := pipeline.AllowedFor(&req.Design, req.Rules, req.PanelID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respond(w, r, allowed)
}

func (s *Server) handleCapacity(w http.ResponseWriter, r *http.Request) {
	req, err := decode(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := pipeline.PanelCapacity(&req.Design, req.Rules, req.PanelID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respond(w, r, c)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	req, err := decode(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := req.Format
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateGraphFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := render.Options{IncludeDisabled: req.IncludeDisabled}
	if req.Highlight {
		result, err := s.runner.Check(r.Context(), req.input(), pipeline.Options{Refresh: req.Refresh})
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		opts.Missing = render.MissingFrom(result.Violations)
	}
	dot := render.CoUsageDOT(req.Catalog, req.Rules, opts)

	if format == pipeline.FormatDOT {
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		_, _ = w.Write([]byte(dot))
		return
	}
	svg, err := render.RenderSVG(r.Context(), dot)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "render graph"))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}
