package report

import (
	"math"
	"sort"

	"recruiting-portal/internal/model"
)

const (
	feedbackLimit = 100
	topLimit      = 10
)

// StudentRow is one line of the report: a student with the aggregate of
// every interview they received in the event.
type StudentRow struct {
	EventName           string   `csv:"event_name" excel:"Event"`
	StudentID           string   `csv:"student_id" excel:"Student ID"`
	FullName            string   `csv:"full_name" excel:"Full Name"`
	University          string   `csv:"university" excel:"University"`
	Degree              *string  `csv:"degree" excel:"Degree"`
	GPA                 *float64 `csv:"gpa" excel:"GPA"`
	Email               string   `csv:"email" excel:"Email"`
	Phone               *string  `csv:"phone" excel:"Phone"`
	ResumePath          *string  `csv:"resume_path" excel:"Resume Path"`
	InterviewsCount     int      `csv:"interviews_count" excel:"Interviews"`
	AvgOverall          *float64 `csv:"avg_overall" excel:"Avg Overall"`
	AvgTech             *float64 `csv:"avg_tech" excel:"Avg Tech"`
	AvgComm             *float64 `csv:"avg_comm" excel:"Avg Comm"`
	LatestFeedbackShort string   `csv:"latest_feedback_short" excel:"Latest Feedback"`
	LatestFeedback      *string  `csv:"-" excel:"-"`
}

// InterviewRow is one interview, exported on its own sheet.
type InterviewRow struct {
	StudentName    string `excel:"Student"`
	RecruiterEmail string `excel:"Recruiter"`
	RatingOverall  int    `excel:"Overall"`
	RatingTech     int    `excel:"Tech"`
	RatingComm     int    `excel:"Comm"`
	Feedback       string `excel:"Feedback"`
	CreatedAt      string `excel:"Created At"`
}

type KPIs struct {
	TotalStudents        int      `json:"totalStudents"`
	TotalInterviews      int      `json:"totalInterviews"`
	InterviewsPerStudent float64  `json:"interviewsPerStudent"`
	AvgOverall           *float64 `json:"avgOverall"`
	ResumePercentage     int      `json:"resumePercentage"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func mean(sum, n int) *float64 {
	if n == 0 {
		return nil
	}
	v := round2(float64(sum) / float64(n))
	return &v
}

// shorten truncates s to feedbackLimit runes, marking the cut with "...".
func shorten(s string) string {
	r := []rune(s)
	if len(r) <= feedbackLimit {
		return s
	}
	return string(r[:feedbackLimit]) + "..."
}

// newer orders interviews by creation, then by last update.
func newer(a, b *model.Interview) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.UpdatedAt.After(b.UpdatedAt)
}

// Aggregate builds one row per student, in the order students are given.
func Aggregate(eventName string, students []model.Student, interviews []model.Interview) []StudentRow {
	byStudent := make(map[string][]*model.Interview, len(students))
	for i := range interviews {
		iv := &interviews[i]
		byStudent[iv.StudentID] = append(byStudent[iv.StudentID], iv)
	}

	rows := make([]StudentRow, 0, len(students))
	for _, s := range students {
		row := StudentRow{
			EventName:  eventName,
			StudentID:  s.ID,
			FullName:   s.FullName,
			University: s.University,
			Degree:     s.Degree,
			GPA:        s.GPA,
			Email:      s.Email,
			Phone:      s.Phone,
			ResumePath: s.ResumePath,
		}

		var overall, tech, comm int
		var latest *model.Interview
		for _, iv := range byStudent[s.ID] {
			overall += iv.RatingOverall
			tech += iv.RatingTech
			comm += iv.RatingComm
			if latest == nil || newer(iv, latest) {
				latest = iv
			}
		}
		n := len(byStudent[s.ID])
		row.InterviewsCount = n
		row.AvgOverall = mean(overall, n)
		row.AvgTech = mean(tech, n)
		row.AvgComm = mean(comm, n)
		if latest != nil {
			row.LatestFeedback = &latest.Feedback
			row.LatestFeedbackShort = shorten(latest.Feedback)
		}
		rows = append(rows, row)
	}
	return rows
}

// Summarize computes the event KPIs. AvgOverall is the mean over every
// interview, not over per-student means.
func Summarize(students []model.Student, interviews []model.Interview) KPIs {
	k := KPIs{TotalStudents: len(students), TotalInterviews: len(interviews)}
	if k.TotalStudents > 0 {
		k.InterviewsPerStudent = round2(float64(k.TotalInterviews) / float64(k.TotalStudents))

		withResume := 0
		for i := range students {
			if students[i].HasResume() {
				withResume++
			}
		}
		k.ResumePercentage = int(math.Round(float64(withResume) * 100 / float64(k.TotalStudents)))
	}

	sum := 0
	for i := range interviews {
		sum += interviews[i].RatingOverall
	}
	k.AvgOverall = mean(sum, len(interviews))
	return k
}

// Top returns at most topLimit interviewed students, best average first and
// ties broken by interview count.
func Top(rows []StudentRow) []StudentRow {
	top := make([]StudentRow, 0, len(rows))
	for _, r := range rows {
		if r.InterviewsCount > 0 && r.AvgOverall != nil {
			top = append(top, r)
		}
	}
	sort.SliceStable(top, func(i, j int) bool {
		if *top[i].AvgOverall != *top[j].AvgOverall {
			return *top[i].AvgOverall > *top[j].AvgOverall
		}
		return top[i].InterviewsCount > top[j].InterviewsCount
	})
	if len(top) > topLimit {
		top = top[:topLimit]
	}
	return top
}
