package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oklog/ulid/v2"

	"github.com/agbru/logmap/internal/dispatch"
	apperrors "github.com/agbru/logmap/internal/errors"
	"github.com/agbru/logmap/internal/logging"
	"github.com/agbru/logmap/internal/logmap"
	"github.com/agbru/logmap/internal/parallel"
)

// mapParams are the recurrence fields shared by the evaluating requests.
type mapParams struct {
	Iterations int64 `json:"iterations"`
	Modulus    int64 `json:"modulus"`
	Multiplier int64 `json:"multiplier"`
}

type calcRequest struct {
	Seed int64 `json:"seed"`
	mapParams
}

type batchRequest struct {
	Input json.RawMessage `json:"input"`
	mapParams
}

type bytesRequest struct {
	// Data is base64 in JSON.
	Data []byte `json:"data"`
	mapParams
}

type valueResponse struct {
	Value int64 `json:"value"`
}

type valuesResponse struct {
	Values []int64 `json:"values"`
	Count  int     `json:"count"`
}

type projectResponse struct {
	// Data is base64 in JSON.
	Data  []byte `json:"data"`
	Count int    `json:"count"`
}

type jobResponse struct {
	JobID  string  `json:"job_id"`
	State  string  `json:"state"`
	Values []int64 `json:"values,omitempty"`
	Error  string  `json:"error,omitempty"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type statusResponse struct {
	Configured     bool           `json:"configured"`
	RuntimeWorkers int            `json:"runtime_workers"`
	PoolSize       int            `json:"pool_size"`
	Pending        int            `json:"pending"`
	Busy           int            `json:"busy"`
	TrackedJobs    int            `json:"tracked_jobs"`
	Runtime        parallel.Stats `json:"runtime"`
}

// statePending is reported for a job that has not been delivered yet.
const statePending = "pending"

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	st := s.engine.Status()
	s.writeJSON(w, http.StatusOK, statusResponse{
		Configured:     st.Configured,
		RuntimeWorkers: st.RuntimeWorkers,
		PoolSize:       st.PoolSize,
		Pending:        st.Pending,
		Busy:           st.Busy,
		TrackedJobs:    s.board.Len(),
		Runtime:        st.Runtime,
	})
}

func (s *Server) handleCalc(w http.ResponseWriter, r *http.Request) {
	var req calcRequest
	if !s.decodeBody(w, r, &req) || !s.checkParams(w, req.mapParams) {
		return
	}
	s.writeJSON(w, http.StatusOK, valueResponse{
		Value: s.engine.Calc(req.Seed, req.Iterations, req.Modulus, req.Multiplier),
	})
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !s.decodeBody(w, r, &req) || !s.checkParams(w, req.mapParams) {
		return
	}
	in, ok := s.decodeInput(w, req.Input)
	if !ok {
		return
	}
	values, err := s.engine.MapCalcList(in, req.Iterations, req.Modulus, req.Multiplier)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, valuesResponse{Values: values, Count: len(values)})
}

func (s *Server) handleBatchBytes(w http.ResponseWriter, r *http.Request) {
	var req bytesRequest
	if !s.decodeBody(w, r, &req) || !s.checkParams(w, req.mapParams) {
		return
	}
	if len(req.Data) > s.security.MaxSeeds {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("batch exceeds %d seeds", s.security.MaxSeeds))
		return
	}
	values := s.engine.MapCalcBinary(req.Data, req.Iterations, req.Modulus, req.Multiplier)
	s.writeJSON(w, http.StatusOK, valuesResponse{Values: values, Count: len(values)})
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	in, ok := s.decodeInput(w, req.Input)
	if !ok {
		return
	}
	data, err := s.engine.ToBinary(in)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, projectResponse{Data: data, Count: len(data)})
}

func (s *Server) handleIdentity(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	in, ok := s.decodeInput(w, req.Input)
	if !ok {
		return
	}
	values, err := s.engine.CallEmpty(in, req.Modulus, req.Multiplier)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, valuesResponse{Values: values, Count: len(values)})
}

func (s *Server) handleInit(w http.ResponseWriter, _ *http.Request) {
	if err := s.engine.Init(); err != nil {
		s.writeFailure(w, err)
		return
	}
	st := s.engine.Status()
	s.writeJSON(w, http.StatusOK, statusResponse{
		Configured:     st.Configured,
		RuntimeWorkers: st.RuntimeWorkers,
		PoolSize:       st.PoolSize,
	})
}

// handleSubmitJob queues the batch and answers 202 at once. Input that does
// not decode is not rejected here: like any failed job it is delivered as a
// failure reply.
func (s *Server) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !s.decodeBody(w, r, &req) || !s.checkLimits(w, req.mapParams) {
		return
	}
	if in, err := logmap.DecodeJSON(req.Input); err == nil && !s.checkSize(w, in) {
		return
	}

	id, err := s.engine.MapCalcAsync(req.Input, req.Iterations, req.Modulus, req.Multiplier, s.board)
	if err != nil {
		s.logger.Error("submit job", err)
		s.writeError(w, http.StatusServiceUnavailable, "dispatcher unavailable")
		return
	}
	s.board.Track(id)
	w.Header().Set("Location", "/v1/jobs/"+id.String())
	s.writeJSON(w, http.StatusAccepted, jobResponse{JobID: id.String(), State: dispatch.StateQueued.String()})
}

// handleGetJob returns a job's reply. ?wait=DURATION long-polls up to
// maxJobWait; a job still running after that answers 202.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, err := ulid.ParseStrict(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed job id")
		return
	}

	var wait time.Duration
	if q := r.URL.Query().Get("wait"); q != "" {
		wait, err = time.ParseDuration(q)
		if err != nil || wait < 0 {
			s.writeError(w, http.StatusBadRequest, "wait must be a non-negative duration")
			return
		}
		wait = min(wait, maxJobWait)
	}

	reply, done, ok := s.board.Wait(r.Context(), id, wait)
	switch {
	case !ok:
		s.writeError(w, http.StatusNotFound, "unknown job")
	case !done:
		s.writeJSON(w, http.StatusAccepted, jobResponse{JobID: id.String(), State: statePending})
	case reply.OK():
		s.writeJSON(w, http.StatusOK, jobResponse{JobID: id.String(), State: dispatch.StateDelivered.String(), Values: reply.Values})
	default:
		s.writeJSON(w, http.StatusOK, jobResponse{JobID: id.String(), State: dispatch.StateDeliveredError.String(), Error: reply.Err.Error()})
	}
}

// decodeBody reads a size-limited JSON body into v.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.security.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// decodeInput classifies the input document and enforces MaxSeeds.
func (s *Server) decodeInput(w http.ResponseWriter, raw json.RawMessage) (logmap.Input, bool) {
	in, err := logmap.DecodeJSON(raw)
	if err != nil {
		s.writeFailure(w, err)
		return nil, false
	}
	return in, s.checkSize(w, in)
}

func (s *Server) checkSize(w http.ResponseWriter, in logmap.Input) bool {
	if n := in.Len(); n < 0 || n > s.security.MaxSeeds {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("batch exceeds %d seeds", s.security.MaxSeeds))
		return false
	}
	return true
}

func (s *Server) checkLimits(w http.ResponseWriter, p mapParams) bool {
	if p.Iterations < 0 || p.Iterations > s.security.MaxIterations {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("iterations must be in [0, %d]", s.security.MaxIterations))
		return false
	}
	return true
}

// checkParams validates a request evaluated on the handler goroutine, where
// a zero modulus would panic.
func (s *Server) checkParams(w http.ResponseWriter, p mapParams) bool {
	if !s.checkLimits(w, p) {
		return false
	}
	if p.Modulus == 0 {
		s.writeError(w, http.StatusBadRequest, "modulus must be nonzero")
		return false
	}
	return true
}

// writeFailure maps err onto a status code.
func (s *Server) writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, parallel.ErrAlreadyConfigured):
		s.writeError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error("request failed", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", err, logging.Int("status", status))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
