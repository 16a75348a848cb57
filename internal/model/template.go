package model

import "time"

// InterviewTemplate is a reusable interview definition. Templates are
// append-only: once a schedule references one through metadata["templateId"]
// the row is deactivated rather than edited or removed.
type InterviewTemplate struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	Name            string     `gorm:"size:128;not null" json:"name"`
	InterviewType   string     `gorm:"index;size:64;not null" json:"interviewType"`
	DurationMinutes int        `gorm:"not null" json:"durationMinutes"`
	Questions       StringList `gorm:"type:text" json:"questions"`
	ChecklistItems  StringList `gorm:"type:text" json:"checklistItems"`
	RequiredSkills  StringList `gorm:"type:text" json:"requiredSkills"`
	Active          bool       `gorm:"not null;default:true" json:"active"`
	CreatedAt       time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt       time.Time  `gorm:"not null" json:"updatedAt"`
}
