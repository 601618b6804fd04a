package student

import (
	"errors"
	"strings"

	"recruiting-portal/internal/global/response"
	"recruiting-portal/internal/global/storage"
	"recruiting-portal/internal/model"
	"recruiting-portal/internal/module/event"
	"recruiting-portal/tools"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Application is the form a student submits. Optional fields left out keep
// their stored value.
type Application struct {
	FullName   string   `json:"full_name"`
	Email      string   `json:"email"`
	Phone      *string  `json:"phone"`
	University string   `json:"university"`
	Degree     *string  `json:"degree"`
	GPA        *float64 `json:"gpa"`
	ResumePath *string  `json:"resume_path"`
}

func (a *Application) normalize() {
	a.FullName = strings.TrimSpace(a.FullName)
	a.Email = strings.TrimSpace(a.Email)
	a.University = strings.TrimSpace(a.University)
	a.Phone = trimOptional(a.Phone)
	a.Degree = trimOptional(a.Degree)
	a.ResumePath = trimOptional(a.ResumePath)
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (a *Application) Validate() error {
	switch {
	case a.University == "":
		return response.ErrInvalidRequest.WithTips("University is required")
	case a.FullName == "":
		return response.ErrInvalidRequest.WithTips("Full name is required")
	case !tools.IsEmail(a.Email):
		return response.ErrInvalidRequest.WithTips("Invalid email address")
	case a.GPA != nil && (*a.GPA < 0 || *a.GPA > 10):
		return response.ErrInvalidRequest.WithTips("GPA must be between 0 and 10")
	}
	return nil
}

// Submit upserts the caller's application into the active event. The row is
// keyed by the principal, so resubmitting overwrites it and moves it to the
// current event.
func Submit(db *gorm.DB, principal *model.Profile, app Application) (*model.Student, error) {
	if principal.Role != model.RoleStudent {
		return nil, response.ErrForbidden.WithTips("Only students can submit applications")
	}
	app.normalize()
	if err := app.Validate(); err != nil {
		return nil, err
	}
	if app.ResumePath != nil {
		bucket, err := storage.Get(db.Statement.Context)
		if err != nil {
			return nil, response.ErrStorage.WithOrigin(err)
		}
		// only keys issued to this principal by the upload endpoint
		if !bucket.OwnedBy(*app.ResumePath, principal.ID) {
			return nil, response.ErrInvalidRequest.WithTips("Invalid resume path")
		}
	}
	active, err := event.RequireActive(db)
	if err != nil {
		return nil, err
	}

	row := &model.Student{
		Model:      model.Model{ID: principal.ID},
		EventID:    active.ID,
		FullName:   app.FullName,
		Email:      app.Email,
		Phone:      app.Phone,
		University: app.University,
		Degree:     app.Degree,
		GPA:        app.GPA,
		ResumePath: app.ResumePath,
	}
	columns := []string{"event_id", "full_name", "email", "university", "updated_at"}
	if app.Phone != nil {
		columns = append(columns, "phone")
	}
	if app.Degree != nil {
		columns = append(columns, "degree")
	}
	if app.GPA != nil {
		columns = append(columns, "gpa")
	}
	if app.ResumePath != nil {
		columns = append(columns, "resume_path")
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(row).Error
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return Find(db, principal.ID)
}

// Find loads one application by student id.
func Find(db *gorm.DB, id string) (*model.Student, error) {
	var s model.Student
	err := db.Where("id = ?", id).First(&s).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, response.ErrNotFound.WithTips("Student not found")
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &s, nil
}
