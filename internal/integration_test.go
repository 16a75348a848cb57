package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"interview-scheduler-backend/internal/api"
	"interview-scheduler-backend/internal/model"
	"interview-scheduler-backend/internal/scheduling"
	"interview-scheduler-backend/internal/store"
	"interview-scheduler-backend/internal/workflow"
)

// TestBookingLifecycle drives two competing booking attempts for the same
// panelist and slot through the HTTP surface and verifies that exactly one
// lands while the other is told to pick another time.
func TestBookingLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testDB, err := gorm.Open(sqlite.Open("file:integration?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()

	require.NoError(t, testDB.AutoMigrate(
		&model.Panelist{},
		&model.PanelistAvailability{},
		&model.InterviewTemplate{},
		&model.InterviewSchedule{},
		&model.CandidatePreference{},
		&model.PushSubscription{},
	))

	appStore := store.NewGormStore(testDB)
	ctx := context.Background()

	// Seed the catalogue, the directory and a Monday-morning window.
	require.NoError(t, appStore.CreateTemplate(ctx, &model.InterviewTemplate{
		ID: "tmpl-60", Name: "System design", InterviewType: "system_design",
		DurationMinutes: 60, Active: true,
	}))
	require.NoError(t, testDB.Create(&model.Panelist{
		ID: "pan-1", Name: "Ash", InterviewTypes: model.StringList{"system_design"},
		AvailabilityStatus: model.PanelistAvailable,
	}).Error)
	require.NoError(t, appStore.CreateAvailability(ctx, &model.PanelistAvailability{
		PanelistID: "pan-1", DayOfWeek: 1,
		StartTime: "09:00", EndTime: "12:00", Timezone: "UTC", Active: true,
	}))

	engine, err := scheduling.NewSlotSuggestionEngine(appStore, 30, 16)
	require.NoError(t, err)
	detector := scheduling.NewConflictDetector(appStore)

	var confirmed []model.InterviewSchedule
	bookings := workflow.NewManager(appStore, engine, detector, func(rec model.InterviewSchedule) {
		confirmed = append(confirmed, rec)
	})

	router := api.NewRouter(appStore, engine, detector, bookings, &webpush.Options{VAPIDPublicKey: "pk"}, api.RouterOptions{
		RateLimitPerSec: 1000,
		RateLimitBurst:  1000,
		CacheTTL:        time.Minute,
	})

	post := func(url, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w
	}

	open := func(candidate string) string {
		w := post("/api/bookings", fmt.Sprintf(`{"candidateId":%q,"createdBy":"op"}`, candidate))
		require.Equal(t, http.StatusCreated, w.Code)
		var state workflow.State
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
		return state.ID
	}

	// Walk both sessions to Review over the same 09:00 slot.
	slotStart := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC).Format(time.RFC3339)
	var ids [2]string
	for i, candidate := range []string{"cand-a", "cand-b"} {
		id := open(candidate)
		ids[i] = id
		base := "/api/bookings/" + id
		require.Equal(t, http.StatusOK, post(base+"/template", `{"templateId":"tmpl-60"}`).Code)
		require.Equal(t, http.StatusOK, post(base+"/panelist", `{"panelistId":"pan-1"}`).Code)
		require.Equal(t, http.StatusOK, post(base+"/slot", fmt.Sprintf(`{"start":%q,"timezone":"UTC"}`, slotStart)).Code)
		require.Equal(t, http.StatusOK, post(base+"/details", `{"meetingLink":"https://meet.example.com/room"}`).Code)
	}

	first := post("/api/bookings/"+ids[0]+"/confirm", `{}`)
	second := post("/api/bookings/"+ids[1]+"/confirm", `{}`)

	require.Equal(t, http.StatusCreated, first.Code)
	require.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), "slot_conflict")

	// Exactly one record landed and was emitted to the completion callback.
	schedules, err := appStore.ListSchedules(ctx, store.ScheduleFilter{PanelistID: "pan-1", Status: model.StatusScheduled})
	require.NoError(t, err)
	require.Len(t, schedules, 1)
	assert.Equal(t, "cand-a", schedules[0].CandidateID)
	require.Len(t, confirmed, 1)
	assert.Equal(t, schedules[0].ID, confirmed[0].ID)

	// The losing session is still parked at Review and can move to a free slot.
	base := "/api/bookings/" + ids[1]
	require.Equal(t, http.StatusOK, post(base+"/back", `{}`).Code)
	require.Equal(t, http.StatusOK, post(base+"/back", `{}`).Code)
	laterStart := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC).Format(time.RFC3339)
	require.Equal(t, http.StatusOK, post(base+"/slot", fmt.Sprintf(`{"start":%q,"timezone":"UTC"}`, laterStart)).Code)
	require.Equal(t, http.StatusOK, post(base+"/details", `{}`).Code)
	require.Equal(t, http.StatusCreated, post(base+"/confirm", `{}`).Code)

	// Fresh suggestions now exclude both booked intervals.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/panelists/pan-1/slots?date=2026-03-02&duration=60", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var slotsResp struct {
		Slots []scheduling.Slot `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &slotsResp))
	require.Len(t, slotsResp.Slots, 1)
	assert.Equal(t, "11:00", slotsResp.Slots[0].Start.UTC().Format("15:04"))
}
