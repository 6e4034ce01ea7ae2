package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/agbru/triplegen/internal/filters"
	"github.com/agbru/triplegen/internal/logging"
	"github.com/agbru/triplegen/internal/service"
	"github.com/agbru/triplegen/internal/triples"
)

// handleHealth responds to health check requests with a 200 OK JSON payload.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleFilters returns the names of the filters /triples accepts.
func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"filters": s.service.Filters(),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleTriples runs one search described by the query parameters 'bound',
// 'filter', 'arg' and 'limit' and returns its solutions as JSON.
//
// Invalid parameters answer 400. A search that times out answers 200 with
// the partial solutions and the Error field set.
func (s *Server) handleTriples(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	req, err := parseTriplesParams(r)
	if err != nil {
		var parseErr ParamError
		if errors.As(err, &parseErr) {
			s.writeErrorResponse(w, parseErr.StatusCode, parseErr.Message)
		} else {
			s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	slot := s.slots.acquire()
	defer s.slots.release(slot)
	if g, ok := s.observer.(gaugeResetter); ok {
		defer g.Forget(slot)
	}
	res, err := s.service.Search(ctx, req, triples.WithIndex(slot), triples.WithObserver(s.observer))

	switch {
	case errors.Is(err, service.ErrMaxBoundExceeded):
		s.writeErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("Value of 'bound' exceeds maximum allowed (%d). This limit prevents resource exhaustion.", s.securityConfig.MaxBound))
		return
	case errors.Is(err, triples.ErrInvalidBound), errors.Is(err, triples.ErrInvalidPredicate):
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err != nil {
		s.logger.Warn("search cut short",
			logging.String("filter", res.Request.Filter),
			logging.Int64("bound", res.Request.Bound),
			logging.Int("solutions", len(res.Solutions)),
			logging.String("reason", err.Error()))
	}
	s.metrics.ObserveSearch(res.Request.Filter, res.Extracted, res.Duration)
	s.writeJSONResponse(w, http.StatusOK, buildTriplesResponse(res, err))
}

// parseTriplesParams extracts the search request from the query string.
// 'bound' is required; 'filter' defaults to service.DefaultFilter.
//
// Returns:
//   - service.Request: The parsed request.
//   - error: A ParamError if a parameter is missing or malformed.
func parseTriplesParams(r *http.Request) (service.Request, error) {
	q := r.URL.Query()

	boundStr := q.Get("bound")
	if boundStr == "" {
		return service.Request{}, ParamError{
			Message:    "Missing 'bound' parameter",
			StatusCode: http.StatusBadRequest,
		}
	}
	bound, err := strconv.ParseInt(boundStr, 10, 64)
	if err != nil || bound <= 0 {
		return service.Request{}, ParamError{
			Message:    "Invalid 'bound' parameter: must be a positive integer",
			StatusCode: http.StatusBadRequest,
		}
	}

	req := service.Request{Bound: bound, Filter: q.Get("filter")}
	if req.Filter == "" {
		req.Filter = service.DefaultFilter
	}

	if argStr := q.Get("arg"); argStr != "" {
		if req.Arg, err = strconv.ParseInt(argStr, 10, 64); err != nil {
			return service.Request{}, ParamError{
				Message:    "Invalid 'arg' parameter: must be an integer",
				StatusCode: http.StatusBadRequest,
			}
		}
	}

	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			return service.Request{}, ParamError{
				Message:    "Invalid 'limit' parameter: must be a non-negative integer",
				StatusCode: http.StatusBadRequest,
			}
		}
		req.Limit = limit
	}

	return req, nil
}

// buildTriplesResponse converts a search result into the response body.
func buildTriplesResponse(res service.Result, err error) Response {
	resp := Response{
		Bound:     res.Request.Bound,
		Filter:    res.Request.Filter,
		Arg:       res.Request.Arg,
		Limit:     res.Request.Limit,
		Count:     len(res.Solutions),
		Solutions: res.Solutions,
		Extracted: res.Extracted,
		Exhausted: res.Exhausted,
		Duration:  res.Duration.String(),
	}
	if resp.Solutions == nil {
		resp.Solutions = []filters.Solution{}
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}

// writeJSONResponse writes data as JSON with the given status code.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", err)
	}
}

// writeErrorResponse writes a standardized error response.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	errResp := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	s.writeJSONResponse(w, statusCode, errResp)
}
