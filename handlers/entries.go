// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/project-judge/cliparse"
	"github.com/danielhkuo/project-judge/middleware"
	"github.com/danielhkuo/project-judge/models"
	"github.com/danielhkuo/project-judge/store"
)

type EntryHandler struct {
	store *store.SQLStore
	cfg   cliparse.Config
}

func NewEntryHandler(s *store.SQLStore, cfg cliparse.Config) *EntryHandler {
	return &EntryHandler{store: s, cfg: cfg}
}

// editable authorizes an entry change and refuses it on archived sets.
// It writes the error response itself and reports whether to go on.
func (h *EntryHandler) editable(w http.ResponseWriter, r *http.Request, setName string) bool {
	if !requireAdmin(w, r, setName, h.cfg) {
		return false
	}

	state, err := h.store.GetSetState(r.Context(), setName)
	if err != nil {
		writeError(w, err, "Failed to get set", "set", setName)
		return false
	}
	if state.Archived {
		middleware.ErrorResponse(w, http.StatusConflict, "Set is archived")
		return false
	}
	return true
}

func parseEntryRequest(w http.ResponseWriter, r *http.Request) (models.EntryRequest, bool) {
	var req models.EntryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return req, false
	}

	req.Name = strings.TrimSpace(req.Name)
	req.URL = strings.TrimSpace(req.URL)
	if err := validate.Struct(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return req, false
	}
	return req, true
}

// AddEntry handles POST /sets/{name}/entries
func (h *EntryHandler) AddEntry(w http.ResponseWriter, r *http.Request) {
	setName := r.PathValue("name")
	if !h.editable(w, r, setName) {
		return
	}

	req, ok := parseEntryRequest(w, r)
	if !ok {
		return
	}

	entry, err := h.store.AddEntry(r.Context(), models.Entry{
		SetName:     setName,
		Name:        req.Name,
		URL:         req.URL,
		Description: req.Description,
		Sensitive:   req.Sensitive,
	})
	if err != nil {
		writeError(w, err, "Failed to add entry", "set", setName)
		return
	}

	slog.Info("entry added", "set", setName, "entry_id", entry.ID, "sensitive", entry.Sensitive)

	middleware.JSONResponse(w, http.StatusCreated, models.EntryResponse{Entry: entry})
}

// UpdateEntry handles PUT /sets/{name}/entries/{id}
func (h *EntryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	setName := r.PathValue("name")
	id, ok := entryID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid entry id")
		return
	}
	if !h.editable(w, r, setName) {
		return
	}

	req, ok := parseEntryRequest(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	entry, err := h.store.GetEntry(ctx, setName, id)
	if err != nil {
		writeError(w, err, "Failed to get entry", "set", setName, "entry_id", id)
		return
	}

	entry.Name = req.Name
	entry.URL = req.URL
	entry.Description = req.Description
	entry.Sensitive = req.Sensitive

	if err := h.store.UpdateEntry(ctx, entry); err != nil {
		writeError(w, err, "Failed to update entry", "set", setName, "entry_id", id)
		return
	}

	slog.Info("entry updated", "set", setName, "entry_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.EntryResponse{Entry: entry})
}

// DeleteEntry handles DELETE /sets/{name}/entries/{id}. The entry's votes go
// with it.
func (h *EntryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	setName := r.PathValue("name")
	id, ok := entryID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid entry id")
		return
	}
	if !h.editable(w, r, setName) {
		return
	}

	if err := h.store.DeleteEntry(r.Context(), setName, id); err != nil {
		writeError(w, err, "Failed to delete entry", "set", setName, "entry_id", id)
		return
	}

	slog.Info("entry deleted", "set", setName, "entry_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// MoveUp handles POST /sets/{name}/entries/{id}/move-up
func (h *EntryHandler) MoveUp(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, store.MoveUp)
}

// MoveDown handles POST /sets/{name}/entries/{id}/move-down
func (h *EntryHandler) MoveDown(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, store.MoveDown)
}

func (h *EntryHandler) move(w http.ResponseWriter, r *http.Request, dir store.Direction) {
	setName := r.PathValue("name")
	id, ok := entryID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid entry id")
		return
	}
	if !h.editable(w, r, setName) {
		return
	}

	ctx := r.Context()
	if err := h.store.MoveEntry(ctx, setName, id, dir); err != nil {
		writeError(w, err, "Failed to move entry", "set", setName, "entry_id", id)
		return
	}

	entries, err := h.store.ListEntries(ctx, setName)
	if err != nil {
		writeError(w, err, "Failed to list entries", "set", setName)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, entries)
}
