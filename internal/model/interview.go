package model

// Interview is one recruiter's rating of one student within one event. The
// (event, student, recruiter) triple is unique and writes upsert on it.
type Interview struct {
	Model
	EventID       string   `gorm:"type:char(36);not null;uniqueIndex:idx_interview_triple" json:"event_id"`
	StudentID     string   `gorm:"type:char(36);not null;uniqueIndex:idx_interview_triple;index" json:"student_id"`
	RecruiterID   string   `gorm:"type:char(36);not null;uniqueIndex:idx_interview_triple" json:"recruiter_id"`
	RatingOverall int      `gorm:"not null" json:"rating_overall"`
	RatingTech    int      `gorm:"not null" json:"rating_tech"`
	RatingComm    int      `gorm:"not null" json:"rating_comm"`
	Feedback      string   `gorm:"type:text;not null" json:"feedback"`
	Recruiter     *Profile `gorm:"foreignKey:RecruiterID" json:"recruiter,omitempty"`
}
