package scheduling

import (
	"context"
	"time"

	"interview-scheduler-backend/internal/model"
	"interview-scheduler-backend/internal/store"
)

// ConflictDetector finds existing bookings that overlap a proposed interval.
type ConflictDetector struct {
	store store.Store
}

// NewConflictDetector creates a detector over the given store.
func NewConflictDetector(s store.Store) *ConflictDetector {
	return &ConflictDetector{store: s}
}

// Detect returns the "scheduled" interviews for panelistID whose interval
// overlaps [start, start+duration). The test is half-open, so back-to-back
// meetings never conflict. An empty result means the interval is free; it is
// never an error.
func (d *ConflictDetector) Detect(ctx context.Context, panelistID string, start time.Time, durationMinutes int) ([]model.InterviewSchedule, error) {
	if durationMinutes <= 0 {
		return nil, &ValidationError{Field: "durationMinutes", Reason: "must be positive"}
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	existing, err := d.store.ListSchedules(ctx, store.ScheduleFilter{
		PanelistID: panelistID,
		Status:     model.StatusScheduled,
		From:       start,
		To:         end,
	})
	if err != nil {
		return nil, &PersistenceError{Op: "list schedules", Err: err}
	}

	conflicts := make([]model.InterviewSchedule, 0, len(existing))
	for _, rec := range existing {
		if overlaps(rec.ScheduledStart, rec.ScheduledEnd, start, end) {
			conflicts = append(conflicts, rec)
		}
	}
	return conflicts, nil
}

// overlaps is the half-open interval overlap test used everywhere in the
// scheduling core: [aStart, aEnd) and [bStart, bEnd) overlap iff
// aStart < bEnd && aEnd > bStart.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
