package admin

import (
	"context"
	"errors"

	"recruiting-portal/internal/global/response"
	"recruiting-portal/internal/global/storage"
	"recruiting-portal/internal/model"
	"recruiting-portal/internal/module/student"
	"recruiting-portal/tools"

	"gorm.io/gorm"
)

// Students pages through applications matching f, newest first. EventID
// narrows the list to one event.
func Students(db *gorm.DB, f student.Filter) ([]model.Student, tools.Pagination, error) {
	page := f.Page.Normalize()
	scope := func() *gorm.DB {
		q := f.Apply(db.Model(&model.Student{}))
		if f.EventID != "" {
			q = q.Where("event_id = ?", f.EventID)
		}
		return q
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, tools.Pagination{}, response.ErrDatabase.WithOrigin(err)
	}
	students := make([]model.Student, 0)
	if err := scope().Order("created_at DESC").Offset(page.Offset()).Limit(page.PageSize).Find(&students).Error; err != nil {
		return nil, tools.Pagination{}, response.ErrDatabase.WithOrigin(err)
	}
	return students, page.Info(total), nil
}

// RemoveStudent removes the student's interviews, application, profile and
// identity in one transaction. The deleted row is returned so the caller
// can clean up the résumé object.
func RemoveStudent(db *gorm.DB, id string) (*model.Student, error) {
	var removed model.Student
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&removed).Error; err != nil {
			return err
		}
		var profile model.Profile
		profileErr := tx.Where("id = ?", id).First(&profile).Error
		if profileErr != nil && !errors.Is(profileErr, gorm.ErrRecordNotFound) {
			return profileErr
		}

		if err := tx.Where("student_id = ?", id).Delete(&model.Interview{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Student{}, "id = ?", id).Error; err != nil {
			return err
		}
		if profileErr != nil {
			return nil
		}
		if err := tx.Delete(&model.Profile{}, "id = ?", profile.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Identity{}, "id = ?", profile.IdentityID).Error
	})
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, response.ErrNotFound.WithTips("Student not found")
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &removed, nil
}

// removeResume deletes the stored résumé. Failures are logged only.
func removeResume(ctx context.Context, s *model.Student) {
	if !s.HasResume() {
		return
	}
	bucket, err := storage.Get(ctx)
	if err == nil {
		err = bucket.Delete(ctx, *s.ResumePath)
	}
	if err != nil {
		log.Warn("resume not removed", "student_id", s.ID, "path", *s.ResumePath, "error", err)
	}
}
