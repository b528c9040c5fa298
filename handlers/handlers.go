// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/project-judge/auth"
	"github.com/danielhkuo/project-judge/cliparse"
	"github.com/danielhkuo/project-judge/entrytable"
	"github.com/danielhkuo/project-judge/middleware"
	"github.com/danielhkuo/project-judge/scoring"
	"github.com/danielhkuo/project-judge/store"
)

var validate = validator.New()

// validationMessage turns validator errors into a short client message
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		case "url":
			msgs = append(msgs, field+" must be a valid URL")
		case "excludesall":
			msgs = append(msgs, fmt.Sprintf("%s must not contain any of %q", field, fe.Param()))
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}

// requireAdmin checks X-Admin-Key for the set and writes 401 when it fails
func requireAdmin(w http.ResponseWriter, r *http.Request, setName string, cfg cliparse.Config) bool {
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(setName, adminKey, cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}
	return true
}

// viewer resolves the role of the caller from the credential headers
func viewer(r *http.Request, setName string, cfg cliparse.Config) entrytable.Viewer {
	return entrytable.Viewer{Role: auth.ViewerRole(
		setName,
		r.Header.Get("X-Admin-Key"),
		r.Header.Get("X-Voter-Token"),
		cfg.AdminKeySalt,
	)}
}

func renderOptions(cfg cliparse.Config) entrytable.Options {
	return entrytable.NewOptions(cfg.Render)
}

func sliderRange(cfg cliparse.Config) scoring.Range {
	return scoring.Range{Min: cfg.Render.SliderMin, Max: cfg.Render.SliderMax}
}

// entryID parses the {id} path value
func entryID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// writeError maps domain errors onto HTTP statuses. Anything unexpected is
// logged and reported as 500 with msg.
func writeError(w http.ResponseWriter, err error, msg string, attrs ...any) {
	switch {
	case errors.Is(err, store.ErrSetNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Set not found")
	case errors.Is(err, store.ErrEntryNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Entry not found")
	case errors.Is(err, store.ErrSetExists):
		middleware.ErrorResponse(w, http.StatusConflict, "Set already exists")
	case errors.Is(err, store.ErrCriterionExists):
		middleware.ErrorResponse(w, http.StatusConflict, "Criterion already exists")
	case errors.Is(err, entrytable.ErrForbidden):
		middleware.ErrorResponse(w, http.StatusForbidden, "Not allowed to view this table")
	case errors.Is(err, entrytable.ErrVotingClosed):
		middleware.ErrorResponse(w, http.StatusConflict, "Voting is not open")
	case errors.Is(err, scoring.ErrInvalidVote):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error(msg, append([]any{"error", err}, attrs...)...)
		middleware.ErrorResponse(w, http.StatusInternalServerError, msg)
	}
}
