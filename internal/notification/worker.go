package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"interview-scheduler-backend/internal/model"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool fans confirmed-booking notifications out to every subscriber of
// the booked panelist. Jobs carry the persisted schedule id.
type WorkerPool struct {
	size    int
	jobs    chan string
	db      *gorm.DB
	webpush *webpush.Options
	sender  NotificationSender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan string, size),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Notification worker %d started", id)
	for {
		select {
		case scheduleID := <-wp.jobs:
			wp.notifyForSchedule(ctx, scheduleID)
		case <-ctx.Done():
			log.Printf("Notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a confirmed schedule for notification.
func (wp *WorkerPool) Dispatch(scheduleID string) {
	wp.jobs <- scheduleID
}

// notifyForSchedule loads the schedule and pushes a message to every
// subscription watching its panelist.
func (wp *WorkerPool) notifyForSchedule(ctx context.Context, scheduleID string) {
	var rec model.InterviewSchedule
	if err := wp.db.WithContext(ctx).First(&rec, "id = ?", scheduleID).Error; err != nil {
		log.Printf("Error fetching schedule %s: %v", scheduleID, err)
		return
	}
	if rec.PanelistID == "" {
		return
	}

	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Joins("JOIN subscription_panelist_mapping spm ON spm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("spm.panelist_id = ?", rec.PanelistID).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("Error fetching subscriptions for panelist %s: %v", rec.PanelistID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	panelistLabel := rec.PanelistID
	var panelist model.Panelist
	if err := wp.db.WithContext(ctx).
		Select("name").
		First(&panelist, "id = ?", rec.PanelistID).Error; err != nil {
		log.Printf("Error fetching panelist %s: %v", rec.PanelistID, err)
	} else if panelist.Name != "" {
		panelistLabel = panelist.Name
	}

	message := fmt.Sprintf("%s interview booked with %s at %s",
		rec.InterviewType, panelistLabel, rec.ScheduledStart.Format("Mon Jan 2 15:04"))
	log.Printf("Sending %d notifications for schedule %s", len(subscriptions), scheduleID)
	for _, sub := range subscriptions {
		wp.send(ctx, sub, []byte(message))
	}
}

func (wp *WorkerPool) send(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
