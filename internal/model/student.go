package model

// Student is an application. ID equals the applicant's Profile ID, so a
// principal owns at most one row; EventID is re-stamped on every submit.
type Student struct {
	Model
	EventID    string   `gorm:"type:char(36);not null;index" json:"event_id"`
	FullName   string   `gorm:"type:varchar(255);not null" json:"full_name"`
	Email      string   `gorm:"type:varchar(255);not null" json:"email"`
	Phone      *string  `gorm:"type:varchar(64)" json:"phone"`
	University string   `gorm:"type:varchar(255);not null" json:"university"`
	Degree     *string  `gorm:"type:varchar(255)" json:"degree"`
	GPA        *float64 `gorm:"column:gpa" json:"gpa"`
	ResumePath *string  `gorm:"type:varchar(512)" json:"resume_path"`
}

func (s *Student) HasResume() bool {
	return s.ResumePath != nil && *s.ResumePath != ""
}
