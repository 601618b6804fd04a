package event

import (
	"errors"
	"strings"
	"time"

	"recruiting-portal/internal/global/response"
	"recruiting-portal/internal/model"

	"gorm.io/gorm"
)

// Create makes name the only active event. Events it supersedes are
// deactivated and stamped ended_at in the same transaction.
func Create(db *gorm.DB, name string) (*model.RecruitingEvent, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, response.ErrInvalidRequest.WithTips("Event name is required")
	}

	event := &model.RecruitingEvent{Name: name, IsActive: true}
	err := db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Model(&model.RecruitingEvent{}).
			Where("is_active = ?", true).
			Updates(map[string]any{"is_active": false, "ended_at": now}).Error; err != nil {
			return err
		}
		return tx.Create(event).Error
	})
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return event, nil
}

// CloseActive deactivates the active event and stamps ended_at. Nothing
// else is touched.
func CloseActive(db *gorm.DB, now time.Time) (*model.RecruitingEvent, error) {
	event, err := RequireActive(db)
	if err != nil {
		return nil, err
	}
	result := db.Model(&model.RecruitingEvent{}).
		Where("id = ? AND is_active = ?", event.ID, true).
		Updates(map[string]any{"is_active": false, "ended_at": now})
	if result.Error != nil {
		return nil, response.ErrDatabase.WithOrigin(result.Error)
	}
	if result.RowsAffected == 0 {
		// closed concurrently
		return nil, response.ErrNoActiveEvent
	}
	event.IsActive = false
	event.EndedAt = &now
	return event, nil
}

// Active returns the active event, or nil when there is none.
func Active(db *gorm.DB) (*model.RecruitingEvent, error) {
	var event model.RecruitingEvent
	err := db.Where("is_active = ?", true).Order("created_at DESC").First(&event).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &event, nil
}

// RequireActive is Active with ErrNoActiveEvent in place of nil.
func RequireActive(db *gorm.DB) (*model.RecruitingEvent, error) {
	event, err := Active(db)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, response.ErrNoActiveEvent
	}
	return event, nil
}

func Get(db *gorm.DB, id string) (*model.RecruitingEvent, error) {
	var event model.RecruitingEvent
	err := db.Where("id = ?", id).First(&event).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, response.ErrEventNotFound
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &event, nil
}

// List returns every event, newest first.
func List(db *gorm.DB) ([]model.RecruitingEvent, error) {
	events := make([]model.RecruitingEvent, 0)
	if err := db.Order("created_at DESC").Find(&events).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return events, nil
}

// Counts returns the number of students and interviews in eventID.
func Counts(db *gorm.DB, eventID string) (students, interviews int64, err error) {
	if err = db.Model(&model.Student{}).Where("event_id = ?", eventID).Count(&students).Error; err != nil {
		return 0, 0, response.ErrDatabase.WithOrigin(err)
	}
	if err = db.Model(&model.Interview{}).Where("event_id = ?", eventID).Count(&interviews).Error; err != nil {
		return 0, 0, response.ErrDatabase.WithOrigin(err)
	}
	return students, interviews, nil
}
