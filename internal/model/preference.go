package model

import "time"

// CandidatePreference holds a candidate's scheduling preferences. The core
// consults these when suggesting slots but never requires them: preferences
// only narrow suggestions, they never add new ones.
type CandidatePreference struct {
	CandidateID   string     `gorm:"primaryKey;size:64" json:"candidateId"`
	Timezone      string     `gorm:"size:64" json:"timezone"`
	PreferredDays IntList    `gorm:"type:text" json:"preferredDays"` // weekday numbers, empty = any
	WindowStart   string     `gorm:"size:5" json:"windowStart"`      // "HH:MM", empty = any
	WindowEnd     string     `gorm:"size:5" json:"windowEnd"`
	BlackoutDates StringList `gorm:"type:text" json:"blackoutDates"` // "YYYY-MM-DD" whole-day blackouts
	CreatedAt     time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time  `gorm:"not null" json:"updatedAt"`
}
