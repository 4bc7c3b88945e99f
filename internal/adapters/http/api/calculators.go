package api

import (
	"net/http"
	"time"

	service "github.com/okian/ironrank/internal/app"
	"github.com/okian/ironrank/internal/domain/model"
	"github.com/okian/ironrank/internal/domain/plates"
)

type plateRequest struct {
	TargetKg  float64        `json:"target_kg"`
	BarKg     float64        `json:"bar_kg"`
	Plates    []float64      `json:"plates"`
	Inventory []plates.Stock `json:"inventory"`
}

type oneRepMaxRequest struct {
	WeightKg float64 `json:"weight_kg"`
	Reps     int     `json:"reps"`
}

type oneRepMaxResponse struct {
	WeightKg   float64 `json:"weight_kg"`
	Reps       int     `json:"reps"`
	EstimateKg float64 `json:"estimate_kg"`
}

type rankRequest struct {
	VolumeKg float64 `json:"volume_kg"`
}

type summaryRequest struct {
	Sets      []model.LoggedSet `json:"sets"`
	StartedAt time.Time         `json:"started_at"`
	EndedAt   time.Time         `json:"ended_at"`
}

type exerciseRequest struct {
	Sets       []model.LoggedSet `json:"sets"`
	ExerciseID string            `json:"exercise_id"`
}

type undoResponse struct {
	Sets    []model.LoggedSet `json:"sets"`
	Removed bool              `json:"removed"`
}

// handlePlates handles POST /v1/plates.
func (s *Server) handlePlates(w http.ResponseWriter, r *http.Request) {
	const op = "api.plates"
	var req plateRequest
	if err := s.decodePost(w, r, op, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.deps.Plates(r.Context(), service.PlateRequest{
		TargetKg:  req.TargetKg,
		BarKg:     req.BarKg,
		Plates:    req.Plates,
		Inventory: req.Inventory,
	})
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleOneRepMax handles POST /v1/one-rep-max.
func (s *Server) handleOneRepMax(w http.ResponseWriter, r *http.Request) {
	const op = "api.one_rep_max"
	var req oneRepMaxRequest
	if err := s.decodePost(w, r, op, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	est, err := s.deps.OneRepMax(r.Context(), req.WeightKg, req.Reps)
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, oneRepMaxResponse{WeightKg: req.WeightKg, Reps: req.Reps, EstimateKg: est})
}

// handleRank handles POST /v1/rank.
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	const op = "api.rank"
	var req rankRequest
	if err := s.decodePost(w, r, op, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	st, err := s.deps.Rank(r.Context(), req.VolumeKg)
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// handleSummary handles POST /v1/summary.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	const op = "api.summary"
	var req summaryRequest
	if err := s.decodePost(w, r, op, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	sum, err := s.deps.Summary(r.Context(), req.Sets, req.StartedAt, req.EndedAt)
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// handleHistory handles POST /v1/history.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	const op = "api.history"
	var req exerciseRequest
	if err := s.decodePost(w, r, op, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	h, err := s.deps.History(r.Context(), req.Sets, req.ExerciseID)
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, h)
}

// handleUndo handles POST /v1/undo. An empty exercise_id removes the newest
// set overall.
func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	const op = "api.undo"
	var req exerciseRequest
	if err := s.decodePost(w, r, op, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	sets, removed, err := s.deps.Undo(r.Context(), req.Sets, req.ExerciseID)
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	if sets == nil {
		sets = []model.LoggedSet{}
	}
	writeJSON(w, http.StatusOK, undoResponse{Sets: sets, Removed: removed})
}
