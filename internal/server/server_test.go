package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/matzehuels/cabinetry/pkg/design"
	"github.com/matzehuels/cabinetry/pkg/observability"
	"github.com/matzehuels/cabinetry/pkg/pipeline"
	"github.com/matzehuels/cabinetry/pkg/rules"
)

func ptr[T any](v T) *T { return &v }

func testServer() http.Handler {
	runner := pipeline.NewRunner(nil, nil, log.New(&bytes.Buffer{}))
	return New(runner, nil, Options{}).Handler()
}

func testBody(t *testing.T, panelHeight float64, extra map[string]any) *bytes.Buffer {
	t.Helper()
	body := map[string]any{
		"panels": []design.Panel{{ID: "p1", Name: "Main", Width: 600, Height: panelHeight}},
		"catalog": design.NewCatalog([]design.Component{
			{ID: "A", Name: "A", Type: "breaker", Width: 100, Height: 50},
			{ID: "B", Name: "B", Type: "rcd", Width: 80, Height: 60},
		}, nil),
		"placements": []design.CanvasComponent{
			{ID: "a", ComponentID: "A", PanelID: "p1", Properties: design.Properties{Order: 0}},
			{ID: "b", ComponentID: "B", PanelID: "p1", Properties: design.Properties{Order: 1}},
		},
		"rules": []rules.Rule{
			{ID: "gap", Name: "Top gap", Scope: rules.ScopePanel, Enabled: true, Constraints: rules.Constraints{
				&rules.Gap{Placement: ptr(rules.GapTop), Size: ptr(20.0)},
			}},
			{ID: "count", Name: "At most one", Scope: rules.ScopePanel, Enabled: true, Constraints: rules.Constraints{
				&rules.Count{Max: ptr(1)},
			}},
		},
	}
	for k, v := range extra {
		body[k] = v
	}
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	return &buf
}

func do(h http.Handler, path string, body *bytes.Buffer, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", "application/json")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestEvaluate(t *testing.T) {
	h := testServer()

	rec := do(h, "/v1/evaluate", testBody(t, 800, nil), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res pipeline.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Violations, 1)
	assert.Equal(t, "count", res.Violations[0].RuleID)
	assert.Equal(t, 1, res.Stats.Errors)
	assert.NotEmpty(t, res.InputHash)

	// Layout ran first: the top gap is present and A sits below it.
	ys := map[string]float64{}
	for _, p := range res.Placements {
		ys[p.ID] = p.Position.Y
	}
	assert.Equal(t, 0.0, ys["gap-top-p1"])
	assert.Equal(t, 20.0, ys["a"])
}

func TestEvaluateMsgpack(t *testing.T) {
	rec := do(testServer(), "/v1/evaluate", testBody(t, 800, nil), "application/msgpack")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/msgpack", rec.Header().Get("Content-Type"))

	var res map[string]any
	require.NoError(t, msgpack.Unmarshal(rec.Body.Bytes(), &res))
	assert.Contains(t, res, "violations")
}

func TestLayoutEndpoints(t *testing.T) {
	h := testServer()

	t.Run("gaps", func(t *testing.T) {
		rec := do(h, "/v1/layout/gaps", testBody(t, 800, nil), "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"gap-top-p1"`)
	})

	t.Run("add", func(t *testing.T) {
		rec := do(h, "/v1/layout/add", testBody(t, 800, map[string]any{"panelId": "p1", "componentId": "A"}), "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var resp placementsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.PlacementID)
		// a, b, the new item and the top gap reserved by the gap rule.
		require.Len(t, resp.Placements, 4)
		ys := map[string]float64{}
		for _, p := range resp.Placements {
			ys[p.ID] = p.Position.Y
		}
		assert.Contains(t, ys, "gap-top-p1")
		assert.Equal(t, 150.0, ys[resp.PlacementID])
	})

	t.Run("add rejected", func(t *testing.T) {
		// 130mm panel: 20 gap + 50 + 60 used, nothing left for another item.
		rec := do(h, "/v1/layout/add", testBody(t, 130, map[string]any{"panelId": "p1", "componentId": "A"}), "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":"INSUFFICIENT_HEIGHT"`)
	})

	t.Run("add unknown panel", func(t *testing.T) {
		rec := do(h, "/v1/layout/add", testBody(t, 800, map[string]any{"panelId": "nope", "componentId": "A"}), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("move", func(t *testing.T) {
		rec := do(h, "/v1/layout/move", testBody(t, 800, map[string]any{"panelId": "p1", "placementId": "b", "y": 0}), "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var resp placementsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		for _, p := range resp.Placements {
			if p.ID == "b" {
				assert.Equal(t, 0, p.Properties.Order)
			}
		}
	})

	t.Run("move without y", func(t *testing.T) {
		rec := do(h, "/v1/layout/move", testBody(t, 800, map[string]any{"panelId": "p1", "placementId": "b"}), "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("remove unknown placement", func(t *testing.T) {
		rec := do(h, "/v1/layout/remove", testBody(t, 800, map[string]any{"panelId": "p1", "placementId": "zz"}), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "PLACEMENT_NOT_FOUND")
	})
}

func TestAllowedAndCapacity(t *testing.T) {
	h := testServer()

	rec := do(h, "/v1/allowed", testBody(t, 800, map[string]any{"panelId": "p1"}), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var allowed pipeline.Allowed
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &allowed))
	assert.False(t, allowed.Restricted)
	assert.Len(t, allowed.Components, 2)

	rec = do(h, "/v1/capacity", testBody(t, 800, map[string]any{"panelId": "p1"}), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var c pipeline.Capacity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.Equal(t, 780.0, c.Max)
}

func TestGraphDOT(t *testing.T) {
	rec := do(testServer(), "/v1/graph", testBody(t, 800, map[string]any{"format": "dot"}), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "digraph")

	rec = do(testServer(), "/v1/graph", testBody(t, 800, map[string]any{"format": "png"}), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMalformedBody(t *testing.T) {
	rec := do(testServer(), "/v1/evaluate", bytes.NewBufferString(`{"panels": [`), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"INVALID_FORMAT"`)
}

type recordingHooks struct {
	observability.NoopServerHooks
	mu         sync.Mutex
	routes     []string
	rejections []string
}

func (h *recordingHooks) OnRequest(_ context.Context, _, route string, _ int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, route)
}

func (h *recordingHooks) OnRejection(_ context.Context, _, code string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rejections = append(h.rejections, code)
}

func TestServerHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetServerHooks(hooks)
	defer observability.Reset()

	do(testServer(), "/v1/layout/add", testBody(t, 130, map[string]any{"panelId": "p1", "componentId": "A"}), "")

	assert.Equal(t, []string{"/v1/layout/add"}, hooks.routes)
	assert.Equal(t, []string{"INSUFFICIENT_HEIGHT"}, hooks.rejections)
}
