package workflow

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"interview-scheduler-backend/internal/model"
	"interview-scheduler-backend/internal/scheduling"
	"interview-scheduler-backend/internal/store"
)

// Step identifies one state of the booking workflow.
type Step string

const (
	StepTemplateSelect Step = "template_select"
	StepPanelistSelect Step = "panelist_select"
	StepSlotSelect     Step = "slot_select"
	StepDetails        Step = "details"
	StepReview         Step = "review"
	StepConfirmed      Step = "confirmed"
	StepCancelled      Step = "cancelled"
)

// State is the serializable snapshot of a booking in progress: the current
// step plus every field captured so far. Nothing is persisted until Confirm
// succeeds, so abandoning a booking requires no cleanup.
type State struct {
	ID              string                 `json:"id"`
	Step            Step                   `json:"step"`
	CandidateID     string                 `json:"candidateId"`
	CreatedBy       string                 `json:"createdBy"`
	TemplateID      string                 `json:"templateId,omitempty"`
	InterviewType   string                 `json:"interviewType,omitempty"`
	DurationMinutes int                    `json:"durationMinutes,omitempty"`
	PanelistID      string                 `json:"panelistId,omitempty"`
	ScheduledStart  time.Time              `json:"scheduledStart,omitempty"`
	Timezone        string                 `json:"timezone,omitempty"`
	MeetingLink     string                 `json:"meetingLink,omitempty"`
	Location        string                 `json:"location,omitempty"`
	Notes           string                 `json:"notes,omitempty"`
	Metadata        model.ScheduleMetadata `json:"metadata,omitempty"`
	ScheduleID      string                 `json:"scheduleId,omitempty"`
}

// ConfirmedFunc receives the persisted schedule record after a successful
// confirm, e.g. to fan out notifications or calendar exports.
type ConfirmedFunc func(rec model.InterviewSchedule)

// Booking walks one operator through template choice, panelist choice, slot
// choice and meeting details to a confirmed, persisted schedule record. A
// Booking is logically single-threaded; the mutex only guards against the
// HTTP layer driving the same session from overlapping requests.
type Booking struct {
	mu          sync.Mutex
	state       State
	store       store.Store
	engine      *scheduling.SlotSuggestionEngine
	detector    *scheduling.ConflictDetector
	onConfirmed ConfirmedFunc
}

// NewBooking starts a workflow at TemplateSelect for the given candidate.
func NewBooking(s store.Store, engine *scheduling.SlotSuggestionEngine, detector *scheduling.ConflictDetector, candidateID, createdBy string, onConfirmed ConfirmedFunc) *Booking {
	return &Booking{
		state: State{
			ID:          uuid.NewString(),
			Step:        StepTemplateSelect,
			CandidateID: candidateID,
			CreatedBy:   createdBy,
		},
		store:       s,
		engine:      engine,
		detector:    detector,
		onConfirmed: onConfirmed,
	}
}

// State returns a snapshot of the current workflow state.
func (b *Booking) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// SelectTemplate fires the TemplateSelect -> PanelistSelect transition,
// seeding interview type and default duration from the chosen template.
func (b *Booking) SelectTemplate(ctx context.Context, templateID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state.Step != StepTemplateSelect {
		return &scheduling.StateError{Op: "select template", State: string(b.state.Step)}
	}
	tmpl, err := b.store.GetTemplate(ctx, templateID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &scheduling.ValidationError{Field: "templateId", Reason: "template not found"}
		}
		return &scheduling.PersistenceError{Op: "get template", Err: err}
	}
	if !tmpl.Active {
		return &scheduling.ValidationError{Field: "templateId", Reason: "template is inactive"}
	}

	b.state.TemplateID = tmpl.ID
	b.state.InterviewType = tmpl.InterviewType
	b.state.DurationMinutes = tmpl.DurationMinutes
	b.state.Step = StepPanelistSelect
	return nil
}

// EligiblePanelists lists the directory's panelists for the seeded interview
// type. Valid only at PanelistSelect.
func (b *Booking) EligiblePanelists(ctx context.Context) ([]model.Panelist, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state.Step != StepPanelistSelect {
		return nil, &scheduling.StateError{Op: "list panelists", State: string(b.state.Step)}
	}
	panelists, err := b.store.ListPanelists(ctx, b.state.InterviewType)
	if err != nil {
		return nil, &scheduling.PersistenceError{Op: "list panelists", Err: err}
	}
	return panelists, nil
}

// SelectPanelist fires the PanelistSelect -> SlotSelect transition.
func (b *Booking) SelectPanelist(ctx context.Context, panelistID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state.Step != StepPanelistSelect {
		return &scheduling.StateError{Op: "select panelist", State: string(b.state.Step)}
	}
	if panelistID == "" {
		return &scheduling.ValidationError{Field: "panelistId", Reason: "must not be empty"}
	}
	if _, err := b.store.GetPanelist(ctx, panelistID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &scheduling.ValidationError{Field: "panelistId", Reason: "panelist not found"}
		}
		return &scheduling.PersistenceError{Op: "get panelist", Err: err}
	}

	b.state.PanelistID = panelistID
	b.state.Step = StepSlotSelect
	return nil
}

// SuggestSlots returns candidate slots for the chosen panelist on a date,
// narrowed by the candidate's preferences when any are stored. Valid only at
// SlotSelect.
func (b *Booking) SuggestSlots(ctx context.Context, date time.Time) ([]scheduling.Slot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state.Step != StepSlotSelect {
		return nil, &scheduling.StateError{Op: "suggest slots", State: string(b.state.Step)}
	}
	return b.engine.SuggestForCandidate(ctx, b.state.PanelistID, b.state.CandidateID, date, b.state.DurationMinutes)
}

// SelectSlot fires the SlotSelect -> Details transition. The chosen slot is
// re-checked against current bookings, since the schedule may have moved
// under the suggestion list; a detected conflict blocks the transition and
// the workflow stays at SlotSelect so another slot can be picked.
func (b *Booking) SelectSlot(ctx context.Context, start time.Time, timezone string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state.Step != StepSlotSelect {
		return &scheduling.StateError{Op: "select slot", State: string(b.state.Step)}
	}
	conflicts, err := b.detector.Detect(ctx, b.state.PanelistID, start, b.state.DurationMinutes)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return &scheduling.ConflictError{
			PanelistID: b.state.PanelistID,
			Start:      start,
			End:        start.Add(time.Duration(b.state.DurationMinutes) * time.Minute),
			Conflicts:  conflicts,
		}
	}

	b.state.ScheduledStart = start
	b.state.Timezone = timezone
	b.state.Step = StepDetails
	return nil
}

// SetDetails captures the optional meeting fields and fires Details ->
// Review. All fields may be empty; the transition is unconditional.
func (b *Booking) SetDetails(meetingLink, location, notes string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state.Step != StepDetails {
		return &scheduling.StateError{Op: "set details", State: string(b.state.Step)}
	}
	b.state.MeetingLink = meetingLink
	b.state.Location = location
	b.state.Notes = notes
	b.state.Step = StepReview
	return nil
}

// Confirm fires Review -> Confirmed: it writes the schedule record through
// the store's conflict-checked create. On any failure the workflow stays at
// Review; a store conflict surfaces as ConflictError so the operator can go
// back and pick another slot.
func (b *Booking) Confirm(ctx context.Context) (*model.InterviewSchedule, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state.Step != StepReview {
		return nil, &scheduling.StateError{Op: "confirm", State: string(b.state.Step)}
	}
	// Guards against a session whose earlier steps were somehow skipped.
	if b.state.PanelistID == "" || b.state.ScheduledStart.IsZero() || b.state.DurationMinutes <= 0 {
		return nil, &scheduling.StateError{Op: "confirm", State: "incomplete booking"}
	}

	metadata := model.ScheduleMetadata{"templateId": b.state.TemplateID}
	for k, v := range b.state.Metadata {
		metadata[k] = v
	}
	rec := model.InterviewSchedule{
		ID:              uuid.NewString(),
		CandidateID:     b.state.CandidateID,
		PanelistID:      b.state.PanelistID,
		ScheduledStart:  b.state.ScheduledStart,
		DurationMinutes: b.state.DurationMinutes,
		InterviewType:   b.state.InterviewType,
		Status:          model.StatusScheduled,
		Timezone:        b.state.Timezone,
		MeetingLink:     b.state.MeetingLink,
		Location:        b.state.Location,
		Notes:           b.state.Notes,
		Metadata:        metadata,
		CreatedBy:       b.state.CreatedBy,
	}

	if err := b.store.CreateSchedule(ctx, &rec); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, &scheduling.ConflictError{
				PanelistID: rec.PanelistID,
				Start:      rec.ScheduledStart,
				End:        rec.ScheduledStart.Add(time.Duration(rec.DurationMinutes) * time.Minute),
			}
		}
		return nil, &scheduling.PersistenceError{Op: "create schedule", Err: err}
	}

	b.state.ScheduleID = rec.ID
	b.state.Step = StepConfirmed
	b.engine.Invalidate(rec.PanelistID)
	if b.onConfirmed != nil {
		b.onConfirmed(rec)
	}
	return &rec, nil
}

// Back steps the workflow one step towards TemplateSelect, preserving every
// captured field. Stepping back and re-forward does not re-validate earlier
// steps.
func (b *Booking) Back() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state.Step {
	case StepPanelistSelect:
		b.state.Step = StepTemplateSelect
	case StepSlotSelect:
		b.state.Step = StepPanelistSelect
	case StepDetails:
		b.state.Step = StepSlotSelect
	case StepReview:
		b.state.Step = StepDetails
	default:
		return &scheduling.StateError{Op: "back", State: string(b.state.Step)}
	}
	return nil
}

// Cancel abandons the workflow from any non-terminal state. Nothing was
// persisted, so there is nothing to clean up.
func (b *Booking) Cancel() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state.Step {
	case StepConfirmed, StepCancelled:
		return &scheduling.StateError{Op: "cancel", State: string(b.state.Step)}
	}
	b.state.Step = StepCancelled
	return nil
}
