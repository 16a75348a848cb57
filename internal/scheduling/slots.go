package scheduling

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"interview-scheduler-backend/internal/model"
	"interview-scheduler-backend/internal/store"
)

// DefaultStepMinutes is the cursor step between candidate slot starts.
// Slots are offered densely every step regardless of duration, so candidates
// may overlap each other; the caller gets maximal choice of start time.
const DefaultStepMinutes = 30

// Slot is one candidate bookable interval.
type Slot struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Timezone string    `json:"timezone"`
}

type suggestKey struct {
	panelistID  string
	candidateID string
	date        string
	duration    int
}

// SlotSuggestionEngine enumerates candidate start times that fit inside a
// panelist's availability windows and do not collide with existing bookings.
// Results are cached per (panelist, date, duration) and invalidated when a
// booking for the panelist is persisted.
type SlotSuggestionEngine struct {
	store       store.Store
	stepMinutes int
	cache       *lru.Cache[suggestKey, []Slot]
}

// NewSlotSuggestionEngine creates an engine. stepMinutes <= 0 falls back to
// DefaultStepMinutes; cacheSize <= 0 disables caching.
func NewSlotSuggestionEngine(s store.Store, stepMinutes, cacheSize int) (*SlotSuggestionEngine, error) {
	if stepMinutes <= 0 {
		stepMinutes = DefaultStepMinutes
	}
	e := &SlotSuggestionEngine{store: s, stepMinutes: stepMinutes}
	if cacheSize > 0 {
		c, err := lru.New[suggestKey, []Slot](cacheSize)
		if err != nil {
			return nil, err
		}
		e.cache = c
	}
	return e, nil
}

// Suggest returns the bookable slots for panelistID on the calendar date of
// `date`, earliest first. Windows on that weekday are walked independently
// with a fixed cursor step; a window shorter than the duration yields no
// slots, and a weekday with no windows yields an empty list, not an error.
func (e *SlotSuggestionEngine) Suggest(ctx context.Context, panelistID string, date time.Time, durationMinutes int) ([]Slot, error) {
	return e.suggest(ctx, panelistID, "", date, durationMinutes)
}

// SuggestForCandidate is Suggest narrowed by the candidate's stored
// preferences, when any exist. Preferences only ever drop slots: a blackout
// date or a non-preferred weekday empties the day, and a preferred time
// window trims slots that fall outside it.
func (e *SlotSuggestionEngine) SuggestForCandidate(ctx context.Context, panelistID, candidateID string, date time.Time, durationMinutes int) ([]Slot, error) {
	return e.suggest(ctx, panelistID, candidateID, date, durationMinutes)
}

func (e *SlotSuggestionEngine) suggest(ctx context.Context, panelistID, candidateID string, date time.Time, durationMinutes int) ([]Slot, error) {
	if panelistID == "" {
		return nil, &ValidationError{Field: "panelistId", Reason: "must not be empty"}
	}
	if durationMinutes <= 0 {
		return nil, &ValidationError{Field: "durationMinutes", Reason: "must be positive"}
	}

	key := suggestKey{
		panelistID:  panelistID,
		candidateID: candidateID,
		date:        date.Format("2006-01-02"),
		duration:    durationMinutes,
	}
	if e.cache != nil {
		if cached, ok := e.cache.Get(key); ok {
			out := make([]Slot, len(cached))
			copy(out, cached)
			return out, nil
		}
	}

	slots, err := e.compute(ctx, panelistID, candidateID, date, durationMinutes)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		e.cache.Add(key, slots)
	}
	out := make([]Slot, len(slots))
	copy(out, slots)
	return out, nil
}

func (e *SlotSuggestionEngine) compute(ctx context.Context, panelistID, candidateID string, date time.Time, durationMinutes int) ([]Slot, error) {
	duration := time.Duration(durationMinutes) * time.Minute
	step := time.Duration(e.stepMinutes) * time.Minute

	var pref *model.CandidatePreference
	if candidateID != "" {
		p, err := e.store.GetPreference(ctx, candidateID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, &PersistenceError{Op: "get candidate preference", Err: err}
		}
		pref = p
	}
	if pref != nil && !dateAllowedByPreference(pref, date) {
		return []Slot{}, nil
	}

	windows, err := e.store.ListAvailability(ctx, panelistID, int(date.Weekday()))
	if err != nil {
		return nil, &PersistenceError{Op: "list availability", Err: err}
	}
	if len(windows) == 0 {
		return []Slot{}, nil
	}

	// Resolve every window to concrete instants first so one date-bounded
	// query covers all of them.
	type boundedWindow struct {
		start, end time.Time
		timezone   string
	}
	bounded := make([]boundedWindow, 0, len(windows))
	var queryFrom, queryTo time.Time
	for _, w := range windows {
		ws, we, err := windowBounds(w, date)
		if err != nil {
			log.Printf("Warning: skipping availability window %d: %v", w.ID, err)
			continue
		}
		bounded = append(bounded, boundedWindow{start: ws, end: we, timezone: w.Timezone})
		if queryFrom.IsZero() || ws.Before(queryFrom) {
			queryFrom = ws
		}
		if queryTo.IsZero() || we.After(queryTo) {
			queryTo = we
		}
	}
	if len(bounded) == 0 {
		return []Slot{}, nil
	}

	existing, err := e.store.ListSchedules(ctx, store.ScheduleFilter{
		PanelistID: panelistID,
		Status:     model.StatusScheduled,
		From:       queryFrom,
		To:         queryTo,
	})
	if err != nil {
		return nil, &PersistenceError{Op: "list schedules", Err: err}
	}

	// Windows are walked independently; no cross-window merging. Results
	// come out in window order, each window's slots earliest first.
	slots := make([]Slot, 0)
	for _, w := range bounded {
		for cursor := w.start; !cursor.Add(duration).After(w.end); cursor = cursor.Add(step) {
			slotEnd := cursor.Add(duration)
			if anyOverlap(existing, cursor, slotEnd) {
				continue
			}
			if pref != nil && !slotAllowedByPreference(pref, cursor, slotEnd) {
				continue
			}
			slots = append(slots, Slot{Start: cursor, End: slotEnd, Timezone: w.timezone})
		}
	}
	return slots, nil
}

// Invalidate drops cached suggestions for a panelist. Called after a booking
// for that panelist is persisted.
func (e *SlotSuggestionEngine) Invalidate(panelistID string) {
	if e.cache == nil {
		return
	}
	for _, key := range e.cache.Keys() {
		if key.panelistID == panelistID {
			e.cache.Remove(key)
		}
	}
}

func anyOverlap(existing []model.InterviewSchedule, start, end time.Time) bool {
	for _, rec := range existing {
		if overlaps(rec.ScheduledStart, rec.ScheduledEnd, start, end) {
			return true
		}
	}
	return false
}

// windowBounds turns a recurring wall-clock window into concrete instants on
// the given calendar date, in the window's own timezone. An unknown timezone
// falls back to UTC; the label still travels with the slot.
func windowBounds(w model.PanelistAvailability, date time.Time) (time.Time, time.Time, error) {
	loc, err := time.LoadLocation(w.Timezone)
	if err != nil {
		log.Printf("Warning: unknown timezone %q for availability window %d, using UTC", w.Timezone, w.ID)
		loc = time.UTC
	}
	sh, sm, err := parseClock(w.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	eh, em, err := parseClock(w.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	y, m, d := date.Date()
	start := time.Date(y, m, d, sh, sm, 0, 0, loc)
	end := time.Date(y, m, d, eh, em, 0, 0, loc)
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("window start %q not before end %q", w.StartTime, w.EndTime)
	}
	return start, end, nil
}

// parseClock parses a wall-clock "HH:MM" string.
func parseClock(s string) (hour, minute int, err error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, 0, fmt.Errorf("malformed clock time %q", s)
	}
	if _, err := fmt.Sscanf(s, "%02d:%02d", &hour, &minute); err != nil {
		return 0, 0, fmt.Errorf("malformed clock time %q", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("clock time %q out of range", s)
	}
	return hour, minute, nil
}

func dateAllowedByPreference(pref *model.CandidatePreference, date time.Time) bool {
	day := date.Format("2006-01-02")
	for _, blackout := range pref.BlackoutDates {
		if blackout == day {
			return false
		}
	}
	if len(pref.PreferredDays) > 0 {
		ok := false
		for _, d := range pref.PreferredDays {
			if d == int(date.Weekday()) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func slotAllowedByPreference(pref *model.CandidatePreference, start, end time.Time) bool {
	if pref.WindowStart == "" || pref.WindowEnd == "" {
		return true
	}
	// Compare wall clocks in the slot's own location; preferences carry no
	// timezone conversion, matching the rest of the core.
	startClock := start.Format("15:04")
	endClock := end.Format("15:04")
	return startClock >= pref.WindowStart && endClock <= pref.WindowEnd && endClock > startClock
}
