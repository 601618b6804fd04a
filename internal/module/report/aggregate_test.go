package report

import (
	"strings"
	"testing"
	"time"

	"recruiting-portal/internal/model"

	"github.com/stretchr/testify/require"
)

func interview(studentID string, overall, tech, comm int, feedback string, created time.Time) model.Interview {
	iv := model.Interview{
		StudentID:     studentID,
		RatingOverall: overall,
		RatingTech:    tech,
		RatingComm:    comm,
		Feedback:      feedback,
	}
	iv.CreatedAt = created
	iv.UpdatedAt = created
	return iv
}

func TestShorten(t *testing.T) {
	require.Equal(t, "short", shorten("short"))

	exact := strings.Repeat("a", feedbackLimit)
	require.Equal(t, exact, shorten(exact))

	long := strings.Repeat("é", feedbackLimit+5)
	got := shorten(long)
	require.Equal(t, strings.Repeat("é", feedbackLimit)+"...", got)
}

func TestAggregate(t *testing.T) {
	base := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	students := []model.Student{
		{Model: model.Model{ID: "s1"}, FullName: "Jane Doe", University: "MIT", Email: "jane@uni.edu"},
		{Model: model.Model{ID: "s2"}, FullName: "John Roe", University: "Stanford", Email: "john@uni.edu"},
	}
	interviews := []model.Interview{
		interview("s1", 4, 5, 3, "first", base),
		interview("s1", 5, 4, 4, "second", base.Add(time.Hour)),
		interview("s1", 4, 4, 4, "third", base.Add(30*time.Minute)),
	}

	rows := Aggregate("Fall 2025", students, interviews)
	require.Len(t, rows, 2)

	jane := rows[0]
	require.Equal(t, "Fall 2025", jane.EventName)
	require.Equal(t, 3, jane.InterviewsCount)
	require.InDelta(t, 4.33, *jane.AvgOverall, 1e-9)
	require.InDelta(t, 4.33, *jane.AvgTech, 1e-9)
	require.InDelta(t, 3.67, *jane.AvgComm, 1e-9)
	require.Equal(t, "second", jane.LatestFeedbackShort)
	require.Equal(t, "second", *jane.LatestFeedback)

	john := rows[1]
	require.Zero(t, john.InterviewsCount)
	require.Nil(t, john.AvgOverall)
	require.Empty(t, john.LatestFeedbackShort)
	require.Nil(t, john.LatestFeedback)
}

func TestAggregateLatestTieBreaksOnUpdate(t *testing.T) {
	base := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	a := interview("s1", 3, 3, 3, "older edit", base)
	b := interview("s1", 3, 3, 3, "newer edit", base)
	b.UpdatedAt = base.Add(time.Minute)

	rows := Aggregate("Fall 2025", []model.Student{{Model: model.Model{ID: "s1"}}}, []model.Interview{b, a})
	require.Equal(t, "newer edit", rows[0].LatestFeedbackShort)
}

func TestSummarize(t *testing.T) {
	resume := "resumes/s1-1.pdf"
	students := []model.Student{
		{Model: model.Model{ID: "s1"}, ResumePath: &resume},
		{Model: model.Model{ID: "s2"}},
		{Model: model.Model{ID: "s3"}},
	}
	interviews := []model.Interview{
		interview("s1", 5, 5, 5, "", time.Now()),
		interview("s1", 4, 4, 4, "", time.Now()),
		interview("s2", 2, 2, 2, "", time.Now()),
		interview("s2", 2, 2, 2, "", time.Now()),
	}

	k := Summarize(students, interviews)
	require.Equal(t, 3, k.TotalStudents)
	require.Equal(t, 4, k.TotalInterviews)
	require.InDelta(t, 1.33, k.InterviewsPerStudent, 1e-9)
	require.Equal(t, 33, k.ResumePercentage)
	require.InDelta(t, 3.25, *k.AvgOverall, 1e-9)

	interviews = append(interviews, interview("s3", 5, 5, 5, "", time.Now()))
	k = Summarize(students, interviews)
	// per-student means would give (4.5+2+5)/3 = 3.83
	require.InDelta(t, 3.6, *k.AvgOverall, 1e-9)

	empty := Summarize(nil, nil)
	require.Zero(t, empty.TotalStudents)
	require.Zero(t, empty.InterviewsPerStudent)
	require.Zero(t, empty.ResumePercentage)
	require.Nil(t, empty.AvgOverall)
}

func TestTop(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	rows := []StudentRow{
		{FullName: "none"},
		{FullName: "b", InterviewsCount: 1, AvgOverall: f(4.5)},
		{FullName: "a", InterviewsCount: 3, AvgOverall: f(4.5)},
		{FullName: "c", InterviewsCount: 2, AvgOverall: f(5)},
	}
	for i := 0; i < 12; i++ {
		rows = append(rows, StudentRow{FullName: "low", InterviewsCount: 1, AvgOverall: f(1)})
	}

	top := Top(rows)
	require.Len(t, top, topLimit)
	require.Equal(t, "c", top[0].FullName)
	require.Equal(t, "a", top[1].FullName)
	require.Equal(t, "b", top[2].FullName)
	for _, r := range top {
		require.NotEqual(t, "none", r.FullName)
	}
}
