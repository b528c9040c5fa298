// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/project-judge/auth"
	"github.com/danielhkuo/project-judge/cliparse"
	"github.com/danielhkuo/project-judge/entrytable"
	"github.com/danielhkuo/project-judge/middleware"
	"github.com/danielhkuo/project-judge/models"
	"github.com/danielhkuo/project-judge/scoring"
	"github.com/danielhkuo/project-judge/store"
)

type VoteHandler struct {
	store *store.SQLStore
	cfg   cliparse.Config
}

func NewVoteHandler(s *store.SQLStore, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{store: s, cfg: cfg}
}

// SubmitVotes handles POST /sets/{name}/votes. The body is either a JSON
// SubmitVotesRequest or the ballot form, one field per slider.
func (h *VoteHandler) SubmitVotes(w http.ResponseWriter, r *http.Request) {
	setName := r.PathValue("name")

	votes, voterToken, err := h.parseBallot(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := auth.ValidateVoterToken(voterToken); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid voter token")
		return
	}

	ctx := r.Context()
	state, err := h.store.GetSetState(ctx, setName)
	if err != nil {
		writeError(w, err, "Failed to get set", "set", setName)
		return
	}
	if !state.VotingOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Voting is not open")
		return
	}

	entries, err := h.store.ListEntries(ctx, setName)
	if err != nil {
		writeError(w, err, "Failed to list entries", "set", setName)
		return
	}
	criteria, err := h.store.ListCriteria(ctx, setName)
	if err != nil {
		writeError(w, err, "Failed to list criteria", "set", setName)
		return
	}

	if err := scoring.ValidateVotes(entries, criteria, votes, sliderRange(h.cfg)); err != nil {
		writeError(w, err, "Failed to validate votes", "set", setName)
		return
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.AdminKeySalt)
	now := time.Now()

	records := make([]models.Vote, 0, len(votes))
	ids := make([]string, 0, len(votes))
	for _, in := range votes {
		vote := models.Vote{
			ID:         uuid.NewString(),
			EntryID:    in.EntryID,
			VoterToken: voterToken,
			IPHash:     ipHash,
			CreatedAt:  now,
		}
		for _, c := range criteria {
			vote.Subresults = append(vote.Subresults, models.VoteSubresult{
				VoteID:      vote.ID,
				CriterionID: c.ID,
				Value:       in.Scores[c.ID],
			})
		}
		records = append(records, vote)
		ids = append(ids, vote.ID)
	}

	if err := h.store.InsertVotes(ctx, records); err != nil {
		writeError(w, err, "Failed to store votes", "set", setName)
		return
	}

	middleware.VotesAccepted.WithLabelValues(setName).Add(float64(len(records)))
	slog.Info("votes submitted", "set", setName, "votes", len(records), "ip_hash", ipHash)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVotesResponse{
		VoteIDs: ids,
		Message: "Votes recorded",
	})
}

// parseBallot reads the votes and the voter token. The token comes from the
// X-Voter-Token header, or the voter_token field of a form post.
func (h *VoteHandler) parseBallot(r *http.Request) ([]models.VoteInput, string, error) {
	voterToken := r.Header.Get("X-Voter-Token")

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/x-www-form-urlencoded" {
		var req models.SubmitVotesRequest
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			return nil, "", errors.New("invalid JSON")
		}
		return req.Votes, voterToken, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, "", errors.New("invalid form")
	}
	if voterToken == "" {
		voterToken = r.PostForm.Get("voter_token")
	}

	prefix := renderOptions(h.cfg).FieldPrefix
	byEntry := map[int64]map[int64]int64{}
	var order []int64
	for field, values := range r.PostForm {
		entryID, criterionID, ok := entrytable.ParseFieldName(prefix, field)
		if !ok {
			continue
		}
		value, err := strconv.ParseInt(values[0], 10, 64)
		if err != nil {
			return nil, "", fmt.Errorf("field %s must be an integer", field)
		}
		if byEntry[entryID] == nil {
			byEntry[entryID] = map[int64]int64{}
			order = append(order, entryID)
		}
		byEntry[entryID][criterionID] = value
	}

	slices.Sort(order)
	votes := make([]models.VoteInput, 0, len(order))
	for _, id := range order {
		votes = append(votes, models.VoteInput{EntryID: id, Scores: byEntry[id]})
	}
	return votes, voterToken, nil
}
