package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestCurrentSprint(t *testing.T) {
	now := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)

	t.Run("picks the sprint containing today", func(t *testing.T) {
		sprints := []Sprint{
			{ID: 1, Name: "Sprint 1", Start: day("2026-07-01"), Finish: day("2026-07-14")},
			{ID: 2, Name: "Sprint 2", Start: day("2026-08-20"), Finish: day("2026-09-02")},
		}
		got := CurrentSprint(sprints, now)
		require.NotNil(t, got)
		assert.Equal(t, 2, got.ID)
	})

	t.Run("boundary days are inclusive", func(t *testing.T) {
		sprints := []Sprint{{ID: 1, Start: day("2026-08-26"), Finish: day("2026-08-26")}}
		got := CurrentSprint(sprints, now)
		require.NotNil(t, got)
		assert.Equal(t, 1, got.ID)
	})

	t.Run("falls back to most recently started", func(t *testing.T) {
		sprints := []Sprint{
			{ID: 1, Start: day("2026-06-01"), Finish: day("2026-06-14")},
			{ID: 2, Start: day("2026-07-01"), Finish: day("2026-07-14")},
			{ID: 3}, // no dates at all
		}
		got := CurrentSprint(sprints, now)
		require.NotNil(t, got)
		assert.Equal(t, 2, got.ID)
	})

	t.Run("empty list selects nothing", func(t *testing.T) {
		assert.Nil(t, CurrentSprint(nil, now))
		assert.Nil(t, CurrentSprint([]Sprint{}, now))
	})

	t.Run("sprints without dates are skipped for the range test", func(t *testing.T) {
		sprints := []Sprint{
			{ID: 1, Start: day("2026-08-01")}, // no finish
			{ID: 2, Start: day("2026-08-25"), Finish: day("2026-08-28")},
		}
		got := CurrentSprint(sprints, now)
		require.NotNil(t, got)
		assert.Equal(t, 2, got.ID)
	})
}
