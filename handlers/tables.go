// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/project-judge/auth"
	"github.com/danielhkuo/project-judge/cliparse"
	"github.com/danielhkuo/project-judge/entrytable"
	"github.com/danielhkuo/project-judge/middleware"
	"github.com/danielhkuo/project-judge/models"
	"github.com/danielhkuo/project-judge/store"
)

type TableHandler struct {
	store *store.SQLStore
	cfg   cliparse.Config
}

func NewTableHandler(s *store.SQLStore, cfg cliparse.Config) *TableHandler {
	return &TableHandler{store: s, cfg: cfg}
}

// GetTable handles GET /sets/{name}/table, the public results table
func (h *TableHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	setName := r.PathValue("name")

	t := entrytable.NewArchiveTable(renderOptions(h.cfg))
	if err := entrytable.Generate(r.Context(), h.store, setName, viewer(r, setName, h.cfg), t); err != nil {
		writeError(w, err, "Failed to generate table", "set", setName)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, t.Table())
}

// GetAdminTable handles GET /sets/{name}/admin
func (h *TableHandler) GetAdminTable(w http.ResponseWriter, r *http.Request) {
	setName := r.PathValue("name")
	if !requireAdmin(w, r, setName, h.cfg) {
		return
	}

	t := entrytable.NewAdminTable(renderOptions(h.cfg))
	if err := entrytable.Generate(r.Context(), h.store, setName, viewer(r, setName, h.cfg), t); err != nil {
		writeError(w, err, "Failed to generate admin table", "set", setName)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, t.Table())
}

// GetBallot handles GET /sets/{name}/ballot. Callers without a voter token
// get a fresh one in the X-Voter-Token response header.
func (h *TableHandler) GetBallot(w http.ResponseWriter, r *http.Request) {
	setName := r.PathValue("name")

	v := viewer(r, setName, h.cfg)
	if v.Role == models.RolePublic {
		if r.Header.Get("X-Voter-Token") != "" {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid voter token")
			return
		}

		token, err := auth.GenerateVoterToken()
		if err != nil {
			slog.Error("failed to generate voter token", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to issue voter token")
			return
		}
		w.Header().Set("X-Voter-Token", token)
		v.Role = models.RoleVoter
	}

	form := entrytable.NewVotingForm(renderOptions(h.cfg))
	if err := entrytable.Generate(r.Context(), h.store, setName, v, form); err != nil {
		// No token for a ballot that could not be shown
		w.Header().Del("X-Voter-Token")
		writeError(w, err, "Failed to generate ballot", "set", setName)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, form.Table())
}
