package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/cabinetry/pkg/observability"
)

// observe logs each request and reports it to the server hooks under its
// route pattern, so /v1/layout/add is one series regardless of payload.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		observability.Server().OnRequest(r.Context(), r.Method, route, status, d)
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", d,
			"request_id", middleware.GetReqID(r.Context()))
	})
}
