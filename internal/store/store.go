package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"interview-scheduler-backend/internal/model"
)

// Errors returned by the store. Callers match with errors.Is.
var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("store: record not found")
	// ErrConflict is returned when creating a schedule whose interval
	// overlaps an existing "scheduled" record for the same panelist.
	ErrConflict = errors.New("store: schedule conflict")
)

// ScheduleFilter narrows ListSchedules. Zero values mean "no constraint".
// The [From, To) range is half-open and matched against the booked interval,
// i.e. a record is included when it overlaps the range at all.
type ScheduleFilter struct {
	PanelistID  string
	CandidateID string
	Status      string
	From        time.Time
	To          time.Time
}

// Store defines the persistence contract for the scheduling core: the
// availability repository, the schedule repository, the template catalog and
// the panelist directory.
type Store interface {
	DB() *gorm.DB

	// Availability repository. The scheduling core only reads these;
	// writes come from panelist management.
	CreateAvailability(ctx context.Context, w *model.PanelistAvailability) error
	GetAvailability(ctx context.Context, id int64) (*model.PanelistAvailability, error)
	ListAvailability(ctx context.Context, panelistID string, dayOfWeek int) ([]model.PanelistAvailability, error)
	UpdateAvailability(ctx context.Context, w *model.PanelistAvailability) error
	DeactivateAvailability(ctx context.Context, id int64) error

	// Schedule repository. CreateSchedule is the only write the booking
	// workflow performs and is conflict-checked atomically.
	CreateSchedule(ctx context.Context, rec *model.InterviewSchedule) error
	GetSchedule(ctx context.Context, id string) (*model.InterviewSchedule, error)
	ListSchedules(ctx context.Context, f ScheduleFilter) ([]model.InterviewSchedule, error)
	UpdateScheduleStatus(ctx context.Context, id, status string) error
	DeleteSchedule(ctx context.Context, id string) error

	// Template catalog (append-only).
	CreateTemplate(ctx context.Context, t *model.InterviewTemplate) error
	GetTemplate(ctx context.Context, id string) (*model.InterviewTemplate, error)
	ListTemplates(ctx context.Context, activeOnly bool) ([]model.InterviewTemplate, error)
	DeactivateTemplate(ctx context.Context, id string) error

	// Panelist directory.
	GetPanelist(ctx context.Context, id string) (*model.Panelist, error)
	ListPanelists(ctx context.Context, interviewType string) ([]model.Panelist, error)

	// Candidate preferences, optional per candidate.
	GetPreference(ctx context.Context, candidateID string) (*model.CandidatePreference, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// translateErr maps gorm errors onto the store's sentinel errors.
func translateErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
