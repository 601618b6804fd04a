package model

import "time"

// RecruitingEvent scopes applications and interviews. At most one row has
// IsActive set.
type RecruitingEvent struct {
	Model
	Name     string     `gorm:"type:varchar(255);not null" json:"name"`
	IsActive bool       `gorm:"not null;default:false;index" json:"is_active"`
	EndedAt  *time.Time `json:"ended_at"`
}
