package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"interview-scheduler-backend/internal/model"
)

// CreateSchedule persists a new schedule record. When the record is a live
// booking (status "scheduled" with a panelist assigned) the overlap check and
// the insert run inside one transaction, so two racing bookings for the same
// panelist cannot both land. On Postgres the exclusion constraint installed
// by internal/db backstops the check; a constraint violation is mapped to
// ErrConflict the same way.
func (s *gormStore) CreateSchedule(ctx context.Context, rec *model.InterviewSchedule) error {
	if rec.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive, got %d", rec.DurationMinutes)
	}
	if !model.ValidStatus(rec.Status) {
		return fmt.Errorf("unknown schedule status %q", rec.Status)
	}
	end := rec.ScheduledStart.Add(time.Duration(rec.DurationMinutes) * time.Minute)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if rec.Status == model.StatusScheduled && rec.PanelistID != "" {
			var overlapping int64
			err := tx.Model(&model.InterviewSchedule{}).
				Where("panelist_id = ? AND status = ?", rec.PanelistID, model.StatusScheduled).
				Where("scheduled_start < ? AND scheduled_end > ?", end, rec.ScheduledStart).
				Count(&overlapping).Error
			if err != nil {
				return err
			}
			if overlapping > 0 {
				return ErrConflict
			}
		}
		if err := tx.Create(rec).Error; err != nil {
			if isExclusionViolation(err) {
				return ErrConflict
			}
			return err
		}
		return nil
	})
}

// GetSchedule fetches a schedule by id.
func (s *gormStore) GetSchedule(ctx context.Context, id string) (*model.InterviewSchedule, error) {
	var rec model.InterviewSchedule
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &rec, nil
}

// ListSchedules returns schedules matching the filter, ordered by start time.
func (s *gormStore) ListSchedules(ctx context.Context, f ScheduleFilter) ([]model.InterviewSchedule, error) {
	q := s.db.WithContext(ctx).Model(&model.InterviewSchedule{})
	if f.PanelistID != "" {
		q = q.Where("panelist_id = ?", f.PanelistID)
	}
	if f.CandidateID != "" {
		q = q.Where("candidate_id = ?", f.CandidateID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	// Range matching is by interval overlap so a booking straddling the
	// range boundary is still reported.
	if !f.From.IsZero() {
		q = q.Where("scheduled_end > ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("scheduled_start < ?", f.To)
	}

	var recs []model.InterviewSchedule
	if err := q.Order("scheduled_start").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// UpdateScheduleStatus transitions a schedule to a new status. Post-interview
// processes use this for completed/cancelled/rescheduled.
func (s *gormStore) UpdateScheduleStatus(ctx context.Context, id, status string) error {
	if !model.ValidStatus(status) {
		return fmt.Errorf("unknown schedule status %q", status)
	}
	res := s.db.WithContext(ctx).Model(&model.InterviewSchedule{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSchedule removes a schedule record outright.
func (s *gormStore) DeleteSchedule(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&model.InterviewSchedule{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// isExclusionViolation recognizes the Postgres exclusion constraint on
// (panelist_id, booked interval). SQLSTATE 23P01 is exclusion_violation.
func isExclusionViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23P01") ||
		strings.Contains(msg, "interview_schedules_no_overlap")
}
