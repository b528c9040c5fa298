// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/danielhkuo/project-judge/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testCriteria() []models.Criterion {
	return []models.Criterion{
		{ID: 7, SetName: "spring", Name: "Design"},
		{ID: 3, SetName: "spring", Name: "Impact"},
	}
}

func testEntries(n int) []models.Entry {
	entries := make([]models.Entry, n)
	for i := range entries {
		entries[i] = models.Entry{ID: int64(i + 1), SetName: "spring", Name: "Entry", Order: i}
	}
	return entries
}

func TestAggregate_NoVotes(t *testing.T) {
	entries := testEntries(3)
	scores := Aggregate(entries, testCriteria(), nil)

	require.Len(t, scores, 3)
	for _, e := range entries {
		score := scores[e.ID]
		assert.Equal(t, int64(0), score.Total)
		assert.Equal(t, []int64{0, 0}, score.SubTotals)
	}
}

func TestAggregate_SubTotalsAlignedToCriteria(t *testing.T) {
	entries := testEntries(2)
	rows := []models.SubTotalRow{
		{EntryID: 1, CriterionID: 3, Sum: 4},  // Impact
		{EntryID: 1, CriterionID: 7, Sum: 9},  // Design
		{EntryID: 2, CriterionID: 3, Sum: -6}, // Impact
	}

	scores := Aggregate(entries, testCriteria(), rows)

	assert.Equal(t, []int64{9, 4}, scores[1].SubTotals)
	assert.Equal(t, int64(13), scores[1].Total)
	assert.Equal(t, []int64{0, -6}, scores[2].SubTotals)
	assert.Equal(t, int64(-6), scores[2].Total)
}

func TestAggregate_IgnoresForeignRows(t *testing.T) {
	rows := []models.SubTotalRow{
		{EntryID: 1, CriterionID: 7, Sum: 2},
		{EntryID: 99, CriterionID: 7, Sum: 50},
		{EntryID: 1, CriterionID: 42, Sum: 50},
	}

	scores := Aggregate(testEntries(1), testCriteria(), rows)

	require.Len(t, scores, 1)
	assert.Equal(t, int64(2), scores[1].Total)
	assert.Equal(t, []int64{2, 0}, scores[1].SubTotals)
}

func TestAggregate_TotalMatchesRawSubresults(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	criteria := testCriteria()
	entries := testEntries(5)

	// Raw subresults, summed independently below
	type raw struct {
		entryID     int64
		criterionID int64
		value       int64
	}
	var subresults []raw
	for i := 0; i < 200; i++ {
		subresults = append(subresults, raw{
			entryID:     int64(rng.Intn(len(entries)) + 1),
			criterionID: criteria[rng.Intn(len(criteria))].ID,
			value:       int64(rng.Intn(21) - 10),
		})
	}

	grouped := make(map[[2]int64]int64)
	expectedTotals := make(map[int64]int64)
	for _, s := range subresults {
		grouped[[2]int64{s.entryID, s.criterionID}] += s.value
		expectedTotals[s.entryID] += s.value
	}
	var rows []models.SubTotalRow
	for key, sum := range grouped {
		rows = append(rows, models.SubTotalRow{EntryID: key[0], CriterionID: key[1], Sum: sum})
	}

	scores := Aggregate(entries, criteria, rows)

	for _, e := range entries {
		score := scores[e.ID]
		var sum int64
		for _, st := range score.SubTotals {
			sum += st
		}
		assert.Equal(t, score.Total, sum, "entry %d total must equal sum of sub-totals", e.ID)
		assert.Equal(t, expectedTotals[e.ID], score.Total, "entry %d total must match raw subresults", e.ID)
		assert.Len(t, score.SubTotals, len(criteria))
	}
}

func TestTotals(t *testing.T) {
	entries := testEntries(3)
	scores := map[int64]Score{1: {Total: 5}, 3: {Total: -1}}

	assert.Equal(t, []int64{5, 0, -1}, Totals(entries, scores))
}

func TestRanker_Classify(t *testing.T) {
	tests := []struct {
		name   string
		totals []int64
		want   map[int64]models.BadgeTier
	}{
		{
			name:   "four distinct scores",
			totals: []int64{10, 30, 0, 20},
			want: map[int64]models.BadgeTier{
				30: models.BadgeFirst,
				20: models.BadgeSecond,
				10: models.BadgeThird,
				0:  models.BadgeLast,
			},
		},
		{
			name:   "single entry is first, not last",
			totals: []int64{4},
			want:   map[int64]models.BadgeTier{4: models.BadgeFirst},
		},
		{
			name:   "two-way tie at the top",
			totals: []int64{15, 15},
			want:   map[int64]models.BadgeTier{15: models.BadgeFirst},
		},
		{
			name:   "tie for top with a lower entry",
			totals: []int64{15, 15, 3},
			want: map[int64]models.BadgeTier{
				15: models.BadgeFirst,
				3:  models.BadgeThird,
			},
		},
		{
			name:   "middle scores get no badge",
			totals: []int64{50, 40, 30, 20, 10},
			want: map[int64]models.BadgeTier{
				50: models.BadgeFirst,
				40: models.BadgeSecond,
				30: models.BadgeThird,
				20: models.BadgeNone,
				10: models.BadgeLast,
			},
		},
		{
			name:   "two entries",
			totals: []int64{-2, 8},
			want: map[int64]models.BadgeTier{
				8:  models.BadgeFirst,
				-2: models.BadgeSecond,
			},
		},
		{
			name:   "unknown score",
			totals: []int64{5, 4, 3, 2},
			want:   map[int64]models.BadgeTier{99: models.BadgeNone},
		},
		{
			name:   "empty set",
			totals: nil,
			want:   map[int64]models.BadgeTier{0: models.BadgeNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRanker(tt.totals)
			for score, tier := range tt.want {
				assert.Equal(t, tier, r.Classify(score), "score %d", score)
			}
		})
	}
}

func TestRanker_OrderIndependent(t *testing.T) {
	totals := []int64{3, 9, 9, -4, 0, 12, 7}
	base := NewRanker(totals)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		permuted := append([]int64(nil), totals...)
		rng.Shuffle(len(permuted), func(a, b int) { permuted[a], permuted[b] = permuted[b], permuted[a] })
		r := NewRanker(permuted)
		for _, score := range totals {
			assert.Equal(t, base.Classify(score), r.Classify(score))
			assert.Equal(t, r.Classify(score), r.Classify(score))
		}
	}
}

func TestNewRanker_DoesNotModifyInput(t *testing.T) {
	totals := []int64{1, 3, 2}
	NewRanker(totals)
	assert.Equal(t, []int64{1, 3, 2}, totals)
}

func TestBadgePath(t *testing.T) {
	r := NewRanker([]int64{30, 20, 10, 5, 0})

	assert.Equal(t, "/badges/first.png", r.BadgePath("/badges/", 30))
	assert.Equal(t, "/badges/last.png", r.BadgePath("/badges/", 0))
	assert.Equal(t, "/badges/blank.png", r.BadgePath("/badges/", 5))
}

func TestValidateVotes(t *testing.T) {
	criteria := testCriteria()
	entries := testEntries(2)
	bounds := Range{Min: -10, Max: 10}

	tests := []struct {
		name    string
		votes   []models.VoteInput
		wantErr bool
	}{
		{
			name:  "complete vote",
			votes: []models.VoteInput{{EntryID: 1, Scores: map[int64]int64{7: 5, 3: -2}}},
		},
		{
			name: "votes for every entry",
			votes: []models.VoteInput{
				{EntryID: 1, Scores: map[int64]int64{7: 0, 3: 0}},
				{EntryID: 2, Scores: map[int64]int64{7: 10, 3: -10}},
			},
		},
		{
			name:    "empty submission",
			votes:   nil,
			wantErr: true,
		},
		{
			name:    "missing criterion",
			votes:   []models.VoteInput{{EntryID: 1, Scores: map[int64]int64{7: 5}}},
			wantErr: true,
		},
		{
			name:    "unknown criterion",
			votes:   []models.VoteInput{{EntryID: 1, Scores: map[int64]int64{7: 5, 3: 1, 8: 1}}},
			wantErr: true,
		},
		{
			name:    "entry from another set",
			votes:   []models.VoteInput{{EntryID: 77, Scores: map[int64]int64{7: 5, 3: 1}}},
			wantErr: true,
		},
		{
			name:    "value out of range",
			votes:   []models.VoteInput{{EntryID: 1, Scores: map[int64]int64{7: 11, 3: 1}}},
			wantErr: true,
		},
		{
			name: "one bad vote rejects all",
			votes: []models.VoteInput{
				{EntryID: 1, Scores: map[int64]int64{7: 1, 3: 1}},
				{EntryID: 2, Scores: map[int64]int64{7: 1}},
			},
			wantErr: true,
		},
		{
			name: "duplicate entry",
			votes: []models.VoteInput{
				{EntryID: 1, Scores: map[int64]int64{7: 1, 3: 1}},
				{EntryID: 1, Scores: map[int64]int64{7: 2, 3: 2}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVotes(entries, criteria, tt.votes, bounds)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidVote))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateVotes_NoCriteria(t *testing.T) {
	err := ValidateVotes(testEntries(1), nil, []models.VoteInput{{EntryID: 1}}, Range{Min: 0, Max: 10})
	assert.ErrorIs(t, err, ErrInvalidVote)
}
