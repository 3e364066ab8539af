package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/katalvlaran/littletsp/cache"
	"github.com/katalvlaran/littletsp/matrixio"
	"github.com/katalvlaran/littletsp/render"
	"github.com/katalvlaran/littletsp/tsp"
)

type solveRequest struct {
	Name    string       `json:"name,omitempty"`
	Labels  []string     `json:"labels,omitempty"`
	Matrix  [][]tsp.Cost `json:"matrix"`
	Start   int          `json:"start"`
	NoCache bool         `json:"no_cache,omitempty"`
}

type solveResponse struct {
	RequestID string         `json:"request_id"`
	Cost      int64          `json:"cost"`
	Solutions []tsp.Solution `json:"solutions"`
	Stats     tsp.Stats      `json:"stats"`
	Cached    bool           `json:"cached"`
	ElapsedMS float64        `json:"elapsed_ms"`
}

type errorResponse struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
}

// httpError carries the status a failure should be answered with.
type httpError struct {
	status  int
	outcome string
	err     error
}

func (e *httpError) Error() string { return e.err.Error() }
func (e *httpError) Unwrap() error { return e.err }

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	inst, req, err := s.decodeInstance(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	res, cached, err := s.solve(r.Context(), inst.Matrix, req.Start, req.NoCache)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, solveResponse{
		RequestID: RequestIDFromContext(r.Context()),
		Cost:      res.Cost,
		Solutions: res.Solutions,
		Stats:     res.Stats,
		Cached:    cached,
		ElapsedMS: float64(time.Since(start).Microseconds()) / 1000,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = render.FormatSVG
	}
	contentType, ok := contentTypes[format]
	if !ok {
		s.fail(w, r, &httpError{http.StatusBadRequest, outcomeInvalid, fmt.Errorf("unsupported format %q", format)})
		return
	}

	inst, req, err := s.decodeInstance(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, _, err := s.solve(r.Context(), inst.Matrix, req.Start, req.NoCache)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	dot := render.ToDOT(inst, &res.Solutions[0], render.Options{})
	out, err := render.Render(r.Context(), dot, format)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

var contentTypes = map[string]string{
	render.FormatSVG: "image/svg+xml",
	render.FormatPNG: "image/png",
	render.FormatDOT: "text/vnd.graphviz; charset=utf-8",
}

// decodeInstance reads and validates the request body.
func (s *Server) decodeInstance(w http.ResponseWriter, r *http.Request) (*matrixio.Instance, solveRequest, error) {
	var req solveRequest
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, req, &httpError{http.StatusRequestEntityTooLarge, outcomeInvalid, err}
		}
		return nil, req, &httpError{http.StatusBadRequest, outcomeInvalid, fmt.Errorf("decode request: %w", err)}
	}
	if n := len(req.Matrix); n > s.cfg.MaxCities {
		return nil, req, &httpError{
			http.StatusRequestEntityTooLarge, outcomeInvalid,
			fmt.Errorf("%d cities exceeds the limit of %d", n, s.cfg.MaxCities),
		}
	}

	m, err := tsp.NewCostMatrix(req.Matrix)
	if err != nil {
		return nil, req, &httpError{http.StatusBadRequest, outcomeInvalid, err}
	}
	if len(req.Labels) > 0 && len(req.Labels) != m.Size() {
		return nil, req, &httpError{http.StatusBadRequest, outcomeInvalid, matrixio.ErrLabelCount}
	}
	if req.Start < 0 || req.Start >= m.Size() {
		return nil, req, &httpError{http.StatusBadRequest, outcomeInvalid, tsp.ErrStartOutOfRange}
	}

	return &matrixio.Instance{Name: req.Name, Labels: req.Labels, Matrix: m}, req, nil
}

// solve answers from the cache when possible, otherwise runs the search under
// the configured timeout and stores the result. Cache failures only log.
func (s *Server) solve(ctx context.Context, m *tsp.CostMatrix, start int, noCache bool) (tsp.Result, bool, error) {
	var (
		rid = RequestIDFromContext(ctx)
		key = cache.SolveKey(m, start)
	)
	s.metrics.cities.Observe(float64(m.Size()))

	if !noCache {
		res, hit, err := cache.GetResult(ctx, s.cache, key)
		switch {
		case err != nil:
			s.metrics.cacheLookups.WithLabelValues("error").Inc()
			s.logger.Warn("cache lookup failed", "rid", rid, "err", err)
		case hit:
			s.metrics.cacheLookups.WithLabelValues("hit").Inc()
			s.metrics.solves.WithLabelValues(outcomeOK).Inc()
			return res, true, nil
		default:
			s.metrics.cacheLookups.WithLabelValues("miss").Inc()
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.SolveTimeout)
	defer cancel()

	began := time.Now()
	res, err := tsp.Solve(m, tsp.WithContext(ctx), tsp.WithStartVertex(start))
	s.metrics.duration.Observe(time.Since(began).Seconds())
	if err != nil {
		return tsp.Result{}, false, classify(err)
	}
	s.metrics.nodes.Observe(float64(res.Stats.Popped))
	s.metrics.solves.WithLabelValues(outcomeOK).Inc()
	s.logger.Debug("solved",
		"rid", rid,
		"cities", m.Size(),
		"cost", res.Cost,
		"tours", len(res.Solutions),
		"popped", res.Stats.Popped,
	)

	if !noCache {
		if err := cache.PutResult(ctx, s.cache, key, res, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("cache store failed", "rid", rid, "err", err)
		}
	}

	return res, false, nil
}

// classify maps solver errors to HTTP statuses.
func classify(err error) error {
	switch {
	case errors.Is(err, tsp.ErrInfeasible):
		return &httpError{http.StatusUnprocessableEntity, outcomeInfeasible, err}
	case errors.Is(err, context.DeadlineExceeded):
		return &httpError{http.StatusGatewayTimeout, outcomeTimeout, fmt.Errorf("search timed out: %w", err)}
	case errors.Is(err, tsp.ErrStartOutOfRange):
		return &httpError{http.StatusBadRequest, outcomeInvalid, err}
	case errors.Is(err, context.Canceled):
		// Client went away; 499 in nginx parlance.
		return &httpError{499, outcomeError, err}
	default:
		return &httpError{http.StatusInternalServerError, outcomeError, err}
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	he := &httpError{http.StatusInternalServerError, outcomeError, err}
	errors.As(err, &he)
	s.metrics.solves.WithLabelValues(he.outcome).Inc()

	rid := RequestIDFromContext(r.Context())
	if he.status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "rid", rid, "status", he.status, "err", err)
	}
	writeJSON(w, he.status, errorResponse{RequestID: rid, Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
