package api

import (
	"net/http"
	"time"

	service "github.com/okian/ironrank/internal/app"
	"github.com/okian/ironrank/internal/domain/model"
)

type dashboardRequest struct {
	Sets          []model.LoggedSet   `json:"sets"`
	Settings      *model.UserSettings `json:"settings"`
	AsOf          *time.Time          `json:"as_of"`
	SessionStarts []time.Time         `json:"session_starts"`
}

// handleDashboard handles POST /v1/dashboard. A missing as_of means now.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.dashboard"
	var req dashboardRequest
	if err := s.decodePost(w, r, op, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	asOf := s.now()
	if req.AsOf != nil {
		asOf = *req.AsOf
	}
	if req.Settings != nil && req.Settings.Experience != "" {
		level, err := model.ParseExperience(string(req.Settings.Experience))
		if err != nil {
			s.fail(w, r, WrapKind(op, ErrBadRequest, err))
			return
		}
		req.Settings.Experience = level
	}

	d, err := s.deps.Dashboard(r.Context(), service.DashboardInput{
		Sets:          req.Sets,
		Settings:      req.Settings,
		AsOf:          asOf,
		SessionStarts: req.SessionStarts,
	})
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, d)
}
