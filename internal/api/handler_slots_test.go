package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"interview-scheduler-backend/internal/model"
	"interview-scheduler-backend/internal/scheduling"
	"interview-scheduler-backend/internal/store"
	"interview-scheduler-backend/internal/workflow"
)

func newTestRouter(t *testing.T) (*gin.Engine, store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Panelist{},
		&model.PanelistAvailability{},
		&model.InterviewTemplate{},
		&model.InterviewSchedule{},
		&model.CandidatePreference{},
		&model.PushSubscription{},
	))

	s := store.NewGormStore(db)
	engine, err := scheduling.NewSlotSuggestionEngine(s, 30, 16)
	require.NoError(t, err)
	detector := scheduling.NewConflictDetector(s)
	bookings := workflow.NewManager(s, engine, detector, nil)

	router := NewRouter(s, engine, detector, bookings, &webpush.Options{VAPIDPublicKey: "test-key"}, RouterOptions{
		RateLimitPerSec: 1000,
		RateLimitBurst:  1000,
		CacheTTL:        time.Minute,
	})
	return router, s
}

func seedMondayMorning(t *testing.T, s store.Store) {
	t.Helper()
	require.NoError(t, s.CreateAvailability(context.Background(), &model.PanelistAvailability{
		PanelistID: "pan-1", DayOfWeek: 1,
		StartTime: "09:00", EndTime: "12:00", Timezone: "UTC", Active: true,
	}))
}

func TestGetSlots(t *testing.T) {
	router, s := newTestRouter(t)
	seedMondayMorning(t, s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/panelists/pan-1/slots?date=2026-03-02&duration=60", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Slots []scheduling.Slot `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Slots, 5)
	assert.Equal(t, "09:00", resp.Slots[0].Start.UTC().Format("15:04"))
	assert.Equal(t, "11:00", resp.Slots[4].Start.UTC().Format("15:04"))
}

func TestGetSlotsBadParams(t *testing.T) {
	router, _ := newTestRouter(t)

	testCases := []struct {
		name string
		url  string
	}{
		{"missing date", "/api/panelists/pan-1/slots?duration=60"},
		{"malformed date", "/api/panelists/pan-1/slots?date=02-03-2026&duration=60"},
		{"missing duration", "/api/panelists/pan-1/slots?date=2026-03-02"},
		{"non-positive duration", "/api/panelists/pan-1/slots?date=2026-03-02&duration=0"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.url, nil))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetConflicts(t *testing.T) {
	router, s := newTestRouter(t)

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.CreateSchedule(context.Background(), &model.InterviewSchedule{
		ID: "existing", CandidateID: "c1", PanelistID: "pan-1",
		ScheduledStart: start, DurationMinutes: 60,
		InterviewType: "technical", Status: model.StatusScheduled,
	}))

	w := httptest.NewRecorder()
	url := "/api/panelists/pan-1/conflicts?start=" + start.Add(30*time.Minute).Format(time.RFC3339) + "&duration=60"
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Conflicts []model.InterviewSchedule `json:"conflicts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, "existing", resp.Conflicts[0].ID)
}

func getSlotStarts(t *testing.T, router *gin.Engine, url string) []string {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Slots []scheduling.Slot `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	starts := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		starts[i] = slot.Start.UTC().Format("15:04")
	}
	return starts
}

func TestPostScheduleRefreshesSlotSuggestions(t *testing.T) {
	router, s := newTestRouter(t)
	seedMondayMorning(t, s)
	slotsURL := "/api/panelists/pan-1/slots?date=2026-03-02&duration=60"

	// Prime the suggestion cache.
	require.Len(t, getSlotStarts(t, router, slotsURL), 5)

	// A direct create outside the booking workflow takes 10:00-11:00.
	body := fmt.Sprintf(`{"candidateId":"c1","panelistId":"pan-1","scheduledStart":%q,"durationMinutes":60,"interviewType":"technical"}`,
		time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC).Format(time.RFC3339))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/schedules", newJSONBody(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	// The cached answer must not survive the write.
	assert.Equal(t, []string{"09:00", "11:00"}, getSlotStarts(t, router, slotsURL))
}

func TestScheduleStatusChangeRefreshesSlotSuggestions(t *testing.T) {
	router, s := newTestRouter(t)
	seedMondayMorning(t, s)
	ctx := context.Background()
	slotsURL := "/api/panelists/pan-1/slots?date=2026-03-02&duration=60"

	require.NoError(t, s.CreateSchedule(ctx, &model.InterviewSchedule{
		ID: "booked", CandidateID: "c1", PanelistID: "pan-1",
		ScheduledStart: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60, InterviewType: "technical", Status: model.StatusScheduled,
	}))
	require.Equal(t, []string{"09:00", "11:00"}, getSlotStarts(t, router, slotsURL))

	// Cancelling the booking frees its interval for suggestions again.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/schedules/booked/status", newJSONBody(`{"status":"cancelled"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Len(t, getSlotStarts(t, router, slotsURL), 5)

	// So does deleting a booking outright.
	body := fmt.Sprintf(`{"candidateId":"c2","panelistId":"pan-1","scheduledStart":%q,"durationMinutes":60,"interviewType":"technical"}`,
		time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC).Format(time.RFC3339))
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/schedules", newJSONBody(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	var doomed model.InterviewSchedule
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doomed))
	require.Equal(t, []string{"10:00", "10:30", "11:00"}, getSlotStarts(t, router, slotsURL))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/schedules/"+doomed.ID, nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, getSlotStarts(t, router, slotsURL), 5)
}

func TestAvailabilityChangeRefreshesSlotSuggestions(t *testing.T) {
	router, _ := newTestRouter(t)
	slotsURL := "/api/panelists/pan-1/slots?date=2026-03-02&duration=60"

	// No windows yet; the empty answer gets cached.
	require.Empty(t, getSlotStarts(t, router, slotsURL))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/panelists/pan-1/availability",
		newJSONBody(`{"dayOfWeek":1,"startTime":"09:00","endTime":"12:00","timezone":"UTC"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	var window model.PanelistAvailability
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &window))

	require.Len(t, getSlotStarts(t, router, slotsURL), 5)

	// Deactivating the window empties the day again.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete,
		fmt.Sprintf("/api/availability/%d", window.ID), nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, getSlotStarts(t, router, slotsURL))
}

func TestPostScheduleConflictAnswers409(t *testing.T) {
	router, s := newTestRouter(t)

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.CreateSchedule(context.Background(), &model.InterviewSchedule{
		ID: "existing", CandidateID: "c1", PanelistID: "pan-1",
		ScheduledStart: start, DurationMinutes: 60,
		InterviewType: "technical", Status: model.StatusScheduled,
	}))

	body := fmt.Sprintf(`{"candidateId":"c2","panelistId":"pan-1","scheduledStart":%q,"durationMinutes":60,"interviewType":"technical"}`,
		start.Add(30*time.Minute).Format(time.RFC3339))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/schedules", newJSONBody(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "slot_conflict")
}
