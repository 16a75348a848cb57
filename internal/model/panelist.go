package model

import "time"

// Panelist availability status values as reported by the directory.
const (
	PanelistAvailable   = "available"
	PanelistBusy        = "busy"
	PanelistUnavailable = "unavailable"
)

// Panelist is a person who conducts interviews. InterviewTypes lists the
// interview types the panelist is eligible to run.
type Panelist struct {
	ID                 string     `gorm:"primaryKey;size:64" json:"id"`
	Name               string     `gorm:"size:128;not null" json:"name"`
	Email              string     `gorm:"size:256" json:"email"`
	InterviewTypes     StringList `gorm:"type:text" json:"interviewTypes"`
	AvailabilityStatus string     `gorm:"size:16;not null;default:available" json:"availabilityStatus"`
	CreatedAt          time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt          time.Time  `gorm:"not null" json:"updatedAt"`

	// Associations
	Availability []PanelistAvailability `gorm:"foreignKey:PanelistID" json:"-"`
}
