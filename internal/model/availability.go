package model

import "time"

// PanelistAvailability is one recurring weekly window during which a panelist
// may be booked. StartTime/EndTime are wall-clock "HH:MM" strings with no date
// attached; Timezone is the IANA zone the window is expressed in.
type PanelistAvailability struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	PanelistID string `gorm:"index;size:64;not null" json:"panelistId"`
	DayOfWeek  int    `gorm:"not null" json:"dayOfWeek"` // 0 = Sunday .. 6 = Saturday
	StartTime  string `gorm:"size:5;not null" json:"startTime"`
	EndTime    string `gorm:"size:5;not null" json:"endTime"`
	Timezone   string `gorm:"size:64;not null" json:"timezone"`
	// Windows are deactivated rather than deleted so historical bookings
	// stay interpretable.
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}
