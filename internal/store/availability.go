package store

import (
	"context"
	"fmt"
	"time"

	"interview-scheduler-backend/internal/model"
)

// CreateAvailability stores one recurring weekly window.
func (s *gormStore) CreateAvailability(ctx context.Context, w *model.PanelistAvailability) error {
	if err := validateWindow(w); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(w).Error
}

// GetAvailability fetches one window by id, active or not.
func (s *gormStore) GetAvailability(ctx context.Context, id int64) (*model.PanelistAvailability, error) {
	var w model.PanelistAvailability
	if err := s.db.WithContext(ctx).First(&w, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &w, nil
}

// ListAvailability returns the active windows for a panelist on a weekday,
// ordered by start time. A weekday of -1 means all weekdays.
func (s *gormStore) ListAvailability(ctx context.Context, panelistID string, dayOfWeek int) ([]model.PanelistAvailability, error) {
	q := s.db.WithContext(ctx).
		Where("panelist_id = ? AND active = ?", panelistID, true)
	if dayOfWeek >= 0 {
		q = q.Where("day_of_week = ?", dayOfWeek)
	}

	var windows []model.PanelistAvailability
	if err := q.Order("day_of_week, start_time").Find(&windows).Error; err != nil {
		return nil, err
	}
	return windows, nil
}

// UpdateAvailability replaces an existing window in full.
func (s *gormStore) UpdateAvailability(ctx context.Context, w *model.PanelistAvailability) error {
	if err := validateWindow(w); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Model(&model.PanelistAvailability{}).
		Where("id = ?", w.ID).
		Updates(map[string]any{
			"panelist_id": w.PanelistID,
			"day_of_week": w.DayOfWeek,
			"start_time":  w.StartTime,
			"end_time":    w.EndTime,
			"timezone":    w.Timezone,
			"active":      w.Active,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeactivateAvailability flips a window to inactive. Windows are never
// deleted so past bookings stay interpretable against them.
func (s *gormStore) DeactivateAvailability(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Model(&model.PanelistAvailability{}).
		Where("id = ?", id).
		Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func validateWindow(w *model.PanelistAvailability) error {
	if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
		return fmt.Errorf("day_of_week %d out of range", w.DayOfWeek)
	}
	for _, clock := range []string{w.StartTime, w.EndTime} {
		if err := validateClock(clock); err != nil {
			return err
		}
	}
	// "HH:MM" strings compare correctly as text.
	if w.StartTime >= w.EndTime {
		return fmt.Errorf("window start %q must be before end %q", w.StartTime, w.EndTime)
	}
	return nil
}

// validateClock rejects anything that is not a zero-padded wall-clock
// "HH:MM" string, so malformed windows fail at creation instead of being
// silently skipped at suggestion time.
func validateClock(s string) error {
	if len(s) != 5 {
		return fmt.Errorf("malformed clock time %q, want HH:MM", s)
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("malformed clock time %q, want HH:MM", s)
	}
	return nil
}
