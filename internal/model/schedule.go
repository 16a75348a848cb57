package model

import (
	"time"

	"gorm.io/gorm"
)

// Schedule status values. A rescheduled record is superseded by a fresh
// "scheduled" record created by the caller; the two are not chained here.
const (
	StatusScheduled   = "scheduled"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
	StatusRescheduled = "rescheduled"
)

// ValidStatus reports whether s is one of the recognized schedule statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusRescheduled:
		return true
	}
	return false
}

// InterviewSchedule is one concrete booked (or historical) interview.
//
// Invariant: for a given PanelistID no two records with status "scheduled"
// may have overlapping [ScheduledStart, ScheduledEnd) intervals. The store
// enforces this at write time.
type InterviewSchedule struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	CandidateID string `gorm:"index;size:64;not null" json:"candidateId"`
	// PanelistID may be empty: some flows defer panelist assignment.
	PanelistID      string    `gorm:"index;size:64" json:"panelistId"`
	ScheduledStart  time.Time `gorm:"index;not null" json:"scheduledStart"`
	DurationMinutes int       `gorm:"not null" json:"durationMinutes"`
	// ScheduledEnd is derived from start + duration and kept denormalized so
	// the store can run range queries and the Postgres exclusion constraint.
	ScheduledEnd  time.Time        `gorm:"not null" json:"scheduledEnd"`
	InterviewType string           `gorm:"size:64;not null" json:"interviewType"`
	Status        string           `gorm:"index;size:16;not null" json:"status"`
	Timezone      string           `gorm:"size:64" json:"timezone"`
	MeetingLink   string           `gorm:"size:512" json:"meetingLink,omitempty"`
	Location      string           `gorm:"size:256" json:"location,omitempty"`
	Notes         string           `gorm:"type:text" json:"notes,omitempty"`
	Metadata      ScheduleMetadata `gorm:"type:text" json:"metadata,omitempty"`
	CreatedBy     string           `gorm:"size:64" json:"createdBy"`
	CreatedAt     time.Time        `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time        `gorm:"not null" json:"updatedAt"`
}

// BeforeSave keeps ScheduledEnd consistent with start + duration.
func (s *InterviewSchedule) BeforeSave(_ *gorm.DB) error {
	if s.DurationMinutes > 0 {
		s.ScheduledEnd = s.ScheduledStart.Add(time.Duration(s.DurationMinutes) * time.Minute)
	}
	return nil
}
