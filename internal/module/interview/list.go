package interview

import (
	"recruiting-portal/internal/global/response"
	"recruiting-portal/internal/model"
	"recruiting-portal/internal/module/event"
	"recruiting-portal/internal/module/report"
	"recruiting-portal/internal/module/student"

	"gorm.io/gorm"
)

// pageStudents returns one page of eventID's students matching f, newest
// first, and the total under the same predicates.
func pageStudents(db *gorm.DB, eventID string, f student.Filter) ([]model.Student, int64, error) {
	page := f.Page.Normalize()
	scope := func() *gorm.DB {
		return f.Apply(db.Model(&model.Student{}).Where("event_id = ?", eventID))
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, response.ErrDatabase.WithOrigin(err)
	}
	rows := make([]model.Student, 0)
	if err := scope().Order("created_at DESC").Offset(page.Offset()).Limit(page.PageSize).Find(&rows).Error; err != nil {
		return nil, 0, response.ErrDatabase.WithOrigin(err)
	}
	return rows, total, nil
}

func idsOf(rows []model.Student) []string {
	ids := make([]string, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	return ids
}

// ListCandidates pages through the active event's students matching f,
// newest first. Without an active event the result is empty.
func ListCandidates(db *gorm.DB, recruiterID string, f student.Filter) ([]Candidate, int64, error) {
	items := make([]Candidate, 0)
	active, err := event.Active(db)
	if err != nil {
		return nil, 0, err
	}
	if active == nil {
		return items, 0, nil
	}

	rows, total, err := pageStudents(db, active.ID, f)
	if err != nil {
		return nil, 0, err
	}
	latest, err := latestByRecruiter(db, active.ID, recruiterID, idsOf(rows))
	if err != nil {
		return nil, 0, response.ErrDatabase.WithOrigin(err)
	}
	for _, s := range rows {
		items = append(items, Candidate{Student: s, HasInterview: latest[s.ID] != nil, LatestInterview: latest[s.ID]})
	}
	return items, total, nil
}

// Summary is a student with the aggregate of every recruiter's interviews
// in the active event.
type Summary struct {
	model.Student
	InterviewsCount int      `json:"interviews_count"`
	AvgOverall      *float64 `json:"avg_overall"`
	AvgTech         *float64 `json:"avg_tech"`
	AvgComm         *float64 `json:"avg_comm"`
	LatestFeedback  *string  `json:"latest_feedback"`
	HasInterview    bool     `json:"has_interview"`
}

// ListSummaries pages through the active event's students matching f with
// the interview aggregates of all recruiters. It requires an active event.
func ListSummaries(db *gorm.DB, f student.Filter) ([]Summary, int64, error) {
	active, err := event.RequireActive(db)
	if err != nil {
		return nil, 0, err
	}
	rows, total, err := pageStudents(db, active.ID, f)
	if err != nil {
		return nil, 0, err
	}

	interviews := make([]model.Interview, 0)
	if len(rows) > 0 {
		if err := db.Where("event_id = ? AND student_id IN ?", active.ID, idsOf(rows)).
			Find(&interviews).Error; err != nil {
			return nil, 0, response.ErrDatabase.WithOrigin(err)
		}
	}

	aggregated := report.Aggregate(active.Name, rows, interviews)
	items := make([]Summary, 0, len(rows))
	for i, r := range aggregated {
		items = append(items, Summary{
			Student:         rows[i],
			InterviewsCount: r.InterviewsCount,
			AvgOverall:      r.AvgOverall,
			AvgTech:         r.AvgTech,
			AvgComm:         r.AvgComm,
			LatestFeedback:  r.LatestFeedback,
			HasInterview:    r.InterviewsCount > 0,
		})
	}
	return items, total, nil
}
