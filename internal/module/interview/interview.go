package interview

import (
	"errors"
	"strings"

	"recruiting-portal/internal/global/response"
	"recruiting-portal/internal/model"
	"recruiting-portal/internal/module/event"
	"recruiting-portal/tools"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Rating is a recruiter's verdict on one student.
type Rating struct {
	StudentID     string `json:"student_id"`
	RatingOverall int    `json:"rating_overall"`
	RatingTech    int    `json:"rating_tech"`
	RatingComm    int    `json:"rating_comm"`
	Feedback      string `json:"feedback"`
}

func validRating(v int) bool {
	return v >= MinRating && v <= MaxRating
}

func (r *Rating) Validate() error {
	r.Feedback = strings.TrimSpace(r.Feedback)
	switch {
	case !tools.IsUUID(r.StudentID):
		return response.ErrInvalidRequest.WithTips("Invalid student ID")
	case !validRating(r.RatingOverall), !validRating(r.RatingTech), !validRating(r.RatingComm):
		return response.ErrInvalidRequest.WithTips("Rating must be between 1 and 5")
	case r.Feedback == "":
		return response.ErrInvalidRequest.WithTips("Feedback is required")
	}
	return nil
}

// Record upserts the caller's interview of a student in the active event.
// Repeated calls for the same (event, student, recruiter) keep one row
// holding the latest ratings.
func Record(db *gorm.DB, recruiter *model.Profile, r Rating) (*model.Interview, error) {
	if !recruiter.Role.AtLeast(model.RoleRecruiter) {
		return nil, response.ErrForbidden
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	active, err := event.RequireActive(db)
	if err != nil {
		return nil, err
	}

	var inEvent int64
	if err := db.Model(&model.Student{}).
		Where("id = ? AND event_id = ?", r.StudentID, active.ID).
		Count(&inEvent).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	if inEvent == 0 {
		return nil, response.ErrStudentNotInEvent
	}

	row := &model.Interview{
		EventID:       active.ID,
		StudentID:     r.StudentID,
		RecruiterID:   recruiter.ID,
		RatingOverall: r.RatingOverall,
		RatingTech:    r.RatingTech,
		RatingComm:    r.RatingComm,
		Feedback:      r.Feedback,
	}
	err = db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "event_id"}, {Name: "student_id"}, {Name: "recruiter_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"rating_overall", "rating_tech", "rating_comm", "feedback", "updated_at",
		}),
	}).Create(row).Error
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	var saved model.Interview
	if err := db.Where("event_id = ? AND student_id = ? AND recruiter_id = ?", active.ID, r.StudentID, recruiter.ID).
		First(&saved).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &saved, nil
}

// latestByRecruiter maps student id to the recruiter's most recently
// updated interview in eventID among studentIDs.
func latestByRecruiter(db *gorm.DB, eventID, recruiterID string, studentIDs []string) (map[string]*model.Interview, error) {
	latest := make(map[string]*model.Interview, len(studentIDs))
	if len(studentIDs) == 0 {
		return latest, nil
	}
	var rows []model.Interview
	if err := db.Where("event_id = ? AND recruiter_id = ? AND student_id IN ?", eventID, recruiterID, studentIDs).
		Order("updated_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		if _, ok := latest[rows[i].StudentID]; !ok {
			latest[rows[i].StudentID] = &rows[i]
		}
	}
	return latest, nil
}

// Candidate is a student as a recruiter sees it.
type Candidate struct {
	model.Student
	HasInterview    bool             `json:"hasInterview"`
	LatestInterview *model.Interview `json:"latestInterview"`
	SignedResumeURL string           `json:"signedResumeUrl,omitempty"`
}

// GetCandidate loads one student with the recruiter's latest interview in
// the active event. Without an active event there is no interview to show.
func GetCandidate(db *gorm.DB, recruiterID, studentID string) (*Candidate, error) {
	var s model.Student
	err := db.Where("id = ?", studentID).First(&s).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, response.ErrNotFound.WithTips("Student not found")
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	candidate := &Candidate{Student: s}
	active, err := event.Active(db)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return candidate, nil
	}
	latest, err := latestByRecruiter(db, active.ID, recruiterID, []string{s.ID})
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	candidate.HasInterview = latest[s.ID] != nil
	candidate.LatestInterview = latest[s.ID]
	return candidate, nil
}
