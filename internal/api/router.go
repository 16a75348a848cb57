package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"interview-scheduler-backend/internal/mw"
	"interview-scheduler-backend/internal/scheduling"
	"interview-scheduler-backend/internal/store"
	"interview-scheduler-backend/internal/workflow"
)

// RouterOptions carries the tunables the router needs from config.
type RouterOptions struct {
	RateLimitPerSec float64
	RateLimitBurst  int
	CacheTTL        time.Duration
}

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, engine *scheduling.SlotSuggestionEngine, detector *scheduling.ConflictDetector, bookings *workflow.Manager, webpushOptions *webpush.Options, opts RouterOptions) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, engine, detector, bookings, webpushOptions)

	if opts.RateLimitPerSec <= 0 {
		opts.RateLimitPerSec = 10
	}
	if opts.RateLimitBurst <= 0 {
		opts.RateLimitBurst = 5
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Minute
	}

	rateLimiter := mw.RateLimiter(rate.Limit(opts.RateLimitPerSec), opts.RateLimitBurst)
	cacheStore := cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	caching := mw.Cache(cacheStore, opts.CacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Catalogue reads sit behind the response cache; anything touching
		// slots or bookings must answer live.
		api.GET("/templates", caching, handler.GetTemplates)
		api.GET("/templates/:id", caching, handler.GetTemplate)
		api.POST("/templates", handler.PostTemplate)
		api.DELETE("/templates/:id", handler.DeleteTemplate)

		api.GET("/panelists", caching, handler.GetPanelists)
		api.GET("/panelists/:panelist_id/availability", handler.GetAvailability)
		api.POST("/panelists/:panelist_id/availability", handler.PostAvailability)
		api.DELETE("/availability/:id", handler.DeleteAvailability)

		api.GET("/panelists/:panelist_id/slots", handler.GetSlots)
		api.GET("/panelists/:panelist_id/conflicts", handler.GetConflicts)

		api.GET("/schedules", handler.GetSchedules)
		api.GET("/schedules/:id", handler.GetSchedule)
		api.POST("/schedules", handler.PostSchedule)
		api.PATCH("/schedules/:id/status", handler.PatchScheduleStatus)
		api.DELETE("/schedules/:id", handler.DeleteSchedule)

		api.POST("/bookings", handler.PostBooking)
		api.GET("/bookings/:id", handler.GetBooking)
		api.POST("/bookings/:id/template", handler.PostBookingTemplate)
		api.GET("/bookings/:id/panelists", handler.GetBookingPanelists)
		api.POST("/bookings/:id/panelist", handler.PostBookingPanelist)
		api.GET("/bookings/:id/slots", handler.GetBookingSlots)
		api.POST("/bookings/:id/slot", handler.PostBookingSlot)
		api.POST("/bookings/:id/details", handler.PostBookingDetails)
		api.POST("/bookings/:id/confirm", handler.PostBookingConfirm)
		api.POST("/bookings/:id/back", handler.PostBookingBack)
		api.POST("/bookings/:id/cancel", handler.PostBookingCancel)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
