package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Model is embedded by every table. IDs are UUID strings assigned on insert.
type Model struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Model) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// All lists the tables created by AutoMigrate, parents first.
func All() []any {
	return []any{
		&Identity{},
		&Profile{},
		&RecruitingEvent{},
		&Student{},
		&Interview{},
	}
}
