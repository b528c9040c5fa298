// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/project-judge/auth"
	"github.com/danielhkuo/project-judge/cliparse"
	"github.com/danielhkuo/project-judge/middleware"
	"github.com/danielhkuo/project-judge/models"
	"github.com/danielhkuo/project-judge/store"
)

type SetHandler struct {
	store *store.SQLStore
	cfg   cliparse.Config
}

func NewSetHandler(s *store.SQLStore, cfg cliparse.Config) *SetHandler {
	return &SetHandler{store: s, cfg: cfg}
}

func setResponse(set models.ProjectSet) models.SetResponse {
	return models.SetResponse{
		Name:      set.Name,
		CreatedAt: set.CreatedAt,
		State:     set.State,
		Phase:     set.State.Phase(),
	}
}

// CreateSet handles POST /sets
func (h *SetHandler) CreateSet(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSetRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if err := h.store.CreateSet(r.Context(), req.Name, time.Now()); err != nil {
		writeError(w, err, "Failed to create set", "set", req.Name)
		return
	}

	adminKey := auth.GenerateAdminKey(req.Name, h.cfg.AdminKeySalt)

	slog.Info("set created", "set", req.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSetResponse{
		Name:     req.Name,
		AdminKey: adminKey,
	})
}

// ListSets handles GET /sets
func (h *SetHandler) ListSets(w http.ResponseWriter, r *http.Request) {
	sets, err := h.store.ListSets(r.Context())
	if err != nil {
		writeError(w, err, "Failed to list sets")
		return
	}

	summaries := make([]models.SetSummary, 0, len(sets))
	for _, set := range sets {
		summaries = append(summaries, models.SetSummary{
			Name:       set.Name,
			CreatedAt:  set.CreatedAt,
			CreatedAgo: humanize.Time(set.CreatedAt),
			Phase:      set.State.Phase(),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, summaries)
}

// GetCurrentSet handles GET /sets/current
func (h *SetHandler) GetCurrentSet(w http.ResponseWriter, r *http.Request) {
	name, err := h.store.CurrentSetName(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get current set")
		return
	}

	set, err := h.store.GetSet(r.Context(), name)
	if err != nil {
		writeError(w, err, "Failed to get current set", "set", name)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, setResponse(set))
}

// GetSet handles GET /sets/{name}
func (h *SetHandler) GetSet(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	set, err := h.store.GetSet(r.Context(), name)
	if err != nil {
		writeError(w, err, "Failed to get set", "set", name)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, setResponse(set))
}

// OpenVoting handles POST /sets/{name}/open
func (h *SetHandler) OpenVoting(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, models.PhaseNotStarted, models.SetState{VotingOpen: true})
}

// CloseVoting handles POST /sets/{name}/close and publishes the results
func (h *SetHandler) CloseVoting(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, models.PhaseOpen, models.SetState{ResultsVisible: true})
}

// ArchiveSet handles POST /sets/{name}/archive
func (h *SetHandler) ArchiveSet(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, models.PhasePublished, models.SetState{ResultsVisible: true, Archived: true})
}

// transition moves a set from one phase to the next. The set must currently
// be in from.
func (h *SetHandler) transition(w http.ResponseWriter, r *http.Request, from models.Phase, to models.SetState) {
	name := r.PathValue("name")
	if !requireAdmin(w, r, name, h.cfg) {
		return
	}

	ctx := r.Context()
	state, err := h.store.GetSetState(ctx, name)
	if err != nil {
		writeError(w, err, "Failed to get set", "set", name)
		return
	}

	if phase := state.Phase(); phase != from {
		middleware.ErrorResponse(w, http.StatusConflict, "Set is "+string(phase)+", expected "+string(from))
		return
	}

	// Opening needs something to vote on
	if to.Phase() == models.PhaseOpen {
		criteria, err := h.store.ListCriteria(ctx, name)
		if err != nil {
			writeError(w, err, "Failed to list criteria", "set", name)
			return
		}
		entries, err := h.store.ListEntries(ctx, name)
		if err != nil {
			writeError(w, err, "Failed to list entries", "set", name)
			return
		}
		if len(criteria) == 0 || len(entries) == 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Set needs at least one criterion and one entry")
			return
		}
	}

	if err := h.store.UpdateSetState(ctx, name, to); err != nil {
		writeError(w, err, "Failed to update set", "set", name)
		return
	}

	slog.Info("set state changed", "set", name, "from", from, "to", to.Phase())

	set, err := h.store.GetSet(ctx, name)
	if err != nil {
		writeError(w, err, "Failed to get set", "set", name)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, setResponse(set))
}

// AddCriterion handles POST /sets/{name}/criteria
func (h *SetHandler) AddCriterion(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if !requireAdmin(w, r, name, h.cfg) {
		return
	}

	var req models.AddCriterionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	ctx := r.Context()
	state, err := h.store.GetSetState(ctx, name)
	if err != nil {
		writeError(w, err, "Failed to get set", "set", name)
		return
	}

	// Every vote scores every criterion, so the list is fixed once voting starts
	if state.Phase() != models.PhaseNotStarted {
		middleware.ErrorResponse(w, http.StatusConflict, "Criteria can only be added before voting opens")
		return
	}

	criterion, err := h.store.AddCriterion(ctx, name, req.Name)
	if err != nil {
		writeError(w, err, "Failed to add criterion", "set", name)
		return
	}

	slog.Info("criterion added", "set", name, "criterion_id", criterion.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.CriterionResponse{Criterion: criterion})
}
