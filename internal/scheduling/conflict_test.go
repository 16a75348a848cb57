package scheduling

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"interview-scheduler-backend/internal/model"
	"interview-scheduler-backend/internal/store"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Panelist{},
		&model.PanelistAvailability{},
		&model.InterviewTemplate{},
		&model.InterviewSchedule{},
		&model.CandidatePreference{},
	))
	return store.NewGormStore(db)
}

func seedSchedule(t *testing.T, s store.Store, id, panelistID string, start time.Time, durationMinutes int, status string) {
	t.Helper()
	require.NoError(t, s.CreateSchedule(context.Background(), &model.InterviewSchedule{
		ID:              id,
		CandidateID:     "cand-" + id,
		PanelistID:      panelistID,
		ScheduledStart:  start,
		DurationMinutes: durationMinutes,
		InterviewType:   "technical",
		Status:          status,
	}))
}

func TestConflictDetector(t *testing.T) {
	s := newTestStore(t)
	detector := NewConflictDetector(s)
	ctx := context.Background()

	// Existing booking 10:00-11:00 for pan-1; a completed one underneath it
	// must never count.
	booked := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	seedSchedule(t, s, "live", "pan-1", booked, 60, model.StatusScheduled)
	seedSchedule(t, s, "done", "pan-1", booked.Add(-3*time.Hour), 60, model.StatusCompleted)

	testCases := []struct {
		name          string
		start         time.Time
		duration      int
		wantConflicts int
	}{
		{"fully inside", booked.Add(15 * time.Minute), 30, 1},
		{"identical", booked, 60, 1},
		{"straddles start", booked.Add(-30 * time.Minute), 60, 1},
		{"straddles end", booked.Add(30 * time.Minute), 60, 1},
		{"contains booking", booked.Add(-30 * time.Minute), 120, 1},
		{"ends exactly at start", booked.Add(-60 * time.Minute), 60, 0},
		{"starts exactly at end", booked.Add(60 * time.Minute), 60, 0},
		{"clear of everything", booked.Add(5 * time.Hour), 60, 0},
		{"over the completed interview", booked.Add(-3 * time.Hour), 60, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conflicts, err := detector.Detect(ctx, "pan-1", tc.start, tc.duration)
			require.NoError(t, err)
			assert.Len(t, conflicts, tc.wantConflicts)
			for _, rec := range conflicts {
				assert.Equal(t, "live", rec.ID)
			}
		})
	}
}

func TestConflictDetectorOtherPanelistUnaffected(t *testing.T) {
	s := newTestStore(t)
	detector := NewConflictDetector(s)

	booked := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	seedSchedule(t, s, "live", "pan-1", booked, 60, model.StatusScheduled)

	conflicts, err := detector.Detect(context.Background(), "pan-2", booked, 60)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestConflictDetectorRejectsNonPositiveDuration(t *testing.T) {
	s := newTestStore(t)
	detector := NewConflictDetector(s)

	for _, duration := range []int{0, -15} {
		_, err := detector.Detect(context.Background(), "pan-1", time.Now(), duration)
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
	}
}
