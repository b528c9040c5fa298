package models

import "time"

// Badge tiers assigned by the ranking engine
type BadgeTier string

const (
	BadgeFirst  BadgeTier = "first"
	BadgeSecond BadgeTier = "second"
	BadgeThird  BadgeTier = "third"
	BadgeLast   BadgeTier = "last"
	BadgeNone   BadgeTier = "none"
)

// Set lifecycle phases derived from SetState
type Phase string

const (
	PhaseNotStarted   Phase = "not_started"
	PhaseOpen         Phase = "open"
	PhasePublished    Phase = "published"
	PhaseArchived     Phase = "archived"
	PhaseInconsistent Phase = "inconsistent"
)

// Domain types

// SetState holds the three independent lifecycle flags of a project set.
type SetState struct {
	VotingOpen     bool `json:"voting_open"`
	ResultsVisible bool `json:"results_visible"`
	Archived       bool `json:"archived"`
}

// Phase maps the flag lattice onto the linear lifecycle. Combinations the
// admin actions never produce report PhaseInconsistent.
func (s SetState) Phase() Phase {
	switch s {
	case SetState{}:
		return PhaseNotStarted
	case SetState{VotingOpen: true}:
		return PhaseOpen
	case SetState{ResultsVisible: true}:
		return PhasePublished
	case SetState{ResultsVisible: true, Archived: true}:
		return PhaseArchived
	default:
		return PhaseInconsistent
	}
}

type ProjectSet struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	State     SetState  `json:"state"`
}

type Criterion struct {
	ID      int64  `json:"id"`
	SetName string `json:"set_name"`
	Name    string `json:"name"`
}

type Entry struct {
	ID          int64  `json:"id"`
	SetName     string `json:"set_name"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Sensitive   bool   `json:"sensitive"`
	Order       int    `json:"order"`
}

type Vote struct {
	ID         string          `json:"id"`
	EntryID    int64           `json:"entry_id"`
	VoterToken string          `json:"-"` // Never expose in JSON
	IPHash     string          `json:"-"` // Never expose in JSON
	CreatedAt  time.Time       `json:"created_at"`
	Subresults []VoteSubresult `json:"subresults"`
}

type VoteSubresult struct {
	VoteID      string `json:"vote_id"`
	CriterionID int64  `json:"criterion_id"`
	Value       int64  `json:"value"`
}

// SubTotalRow is one (entry, criterion) group of the aggregation query
type SubTotalRow struct {
	EntryID     int64
	CriterionID int64
	Sum         int64
}

// Request types

// Set names appear in URLs
type CreateSetRequest struct {
	Name string `json:"name" validate:"required,max=100,excludesall=/?#%"`
}

type AddCriterionRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type EntryRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	URL         string `json:"url" validate:"omitempty,url"`
	Description string `json:"description" validate:"max=4000"`
	Sensitive   bool   `json:"sensitive"`
}

// criterion_id -> value
type VoteInput struct {
	EntryID int64           `json:"entry_id"`
	Scores  map[int64]int64 `json:"scores"`
}

type SubmitVotesRequest struct {
	Votes []VoteInput `json:"votes"`
}

// Response types

type CreateSetResponse struct {
	Name     string `json:"name"`
	AdminKey string `json:"admin_key"`
}

type SetResponse struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	State     SetState  `json:"state"`
	Phase     Phase     `json:"phase"`
}

type SetSummary struct {
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	CreatedAgo string    `json:"created_ago"`
	Phase      Phase     `json:"phase"`
}

type EntryResponse struct {
	Entry Entry `json:"entry"`
}

type CriterionResponse struct {
	Criterion Criterion `json:"criterion"`
}

type SubmitVotesResponse struct {
	VoteIDs []string `json:"vote_ids"`
	Message string   `json:"message"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Viewer roles, ordered by privilege
type Role int

const (
	RolePublic Role = iota
	RoleVoter
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleVoter:
		return "voter"
	case RoleAdmin:
		return "admin"
	default:
		return "public"
	}
}
