package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"interview-scheduler-backend/internal/scheduling"
	"interview-scheduler-backend/internal/store"
	"interview-scheduler-backend/internal/workflow"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	engine   *scheduling.SlotSuggestionEngine
	detector *scheduling.ConflictDetector
	bookings *workflow.Manager
	webpush  *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, engine *scheduling.SlotSuggestionEngine, detector *scheduling.ConflictDetector, bookings *workflow.Manager, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		store:    s,
		engine:   engine,
		detector: detector,
		bookings: bookings,
		webpush:  webpushOptions,
	}
}
