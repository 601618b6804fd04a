package report

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/csv"
	"net/http"
	"strings"
	"testing"
	"time"

	"recruiting-portal/internal/global/mailer"
	"recruiting-portal/internal/global/response"
	"recruiting-portal/internal/model"
	"recruiting-portal/test"
	"recruiting-portal/tools"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fixture struct {
	env   *test.Env
	event *model.RecruitingEvent
	jane  *model.Student
}

func setupFallEvent(t *testing.T) *fixture {
	env := test.Setup(t)
	(&ModuleReport{}).Init()

	ev := env.CreateEvent(t, "Fall 2025", true)
	recruiter, _ := env.CreateUser(t, "rec@company.com", model.RoleRecruiter)
	jane := &model.Student{EventID: ev.ID, FullName: "Jane Doe", Email: "jane@uni.edu", University: "MIT"}
	require.NoError(t, env.DB.Create(jane).Error)
	require.NoError(t, env.DB.Create(&model.Interview{
		EventID:       ev.ID,
		StudentID:     jane.ID,
		RecruiterID:   recruiter.ID,
		RatingOverall: 5,
		RatingTech:    5,
		RatingComm:    4,
		Feedback:      "Excellent problem solver",
	}).Error)
	return &fixture{env: env, event: ev, jane: jane}
}

func TestFileNameAndSubject(t *testing.T) {
	require.Equal(t, "report-Fall-2025.csv", FileName("Fall 2025", ".csv"))
	require.Equal(t, "report-Q1--Hiring-.xlsx", FileName("Q1 (Hiring)", ".xlsx"))

	now := time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)
	require.Equal(t, "Recruiting Report – Fall 2025 – 2025-12-01", Subject("Fall 2025", now))
}

func TestCloseAndReport(t *testing.T) {
	fx := setupFallEvent(t)
	now := time.Now().Truncate(time.Second)

	result, err := CloseAndReport(context.Background(), fx.env.DB, mailer.Default(), now)
	require.NoError(t, err)
	require.NotEmpty(t, result.EmailID)
	require.Equal(t, 1, result.Rows)
	require.Equal(t, 1, result.KPIs.TotalInterviews)

	sent := fx.env.Mail.Sent()
	require.Len(t, sent, 1)
	mail := sent[0]
	require.Equal(t, []string{test.ReportReceiver}, mail.To)
	require.Equal(t, "Bearer re_test", mail.Authorization)
	require.Equal(t, "careers@company.com", mail.From)
	require.Equal(t, Subject("Fall 2025", now), mail.Subject)
	require.Contains(t, mail.HTML, "Jane Doe")
	require.Contains(t, mail.HTML, "Excellent problem solver")

	require.Len(t, mail.Attachments, 1)
	require.Equal(t, "report-Fall-2025.csv", mail.Attachments[0].Filename)
	raw, err := base64.StdEncoding.DecodeString(mail.Attachments[0].Content)
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	header := records[0]
	require.Equal(t, []string{
		"event_name", "student_id", "full_name", "university", "degree", "gpa", "email", "phone",
		"resume_path", "interviews_count", "avg_overall", "avg_tech", "avg_comm", "latest_feedback_short",
	}, header)
	col := func(name string) string {
		for i, h := range header {
			if h == name {
				return records[1][i]
			}
		}
		t.Fatalf("missing column %s", name)
		return ""
	}
	require.Equal(t, "Fall 2025", col("event_name"))
	require.Equal(t, fx.jane.ID, col("student_id"))
	require.Equal(t, "Jane Doe", col("full_name"))
	require.Equal(t, "1", col("interviews_count"))
	require.Equal(t, "5", col("avg_overall"))
	require.Equal(t, "4", col("avg_comm"))
	require.Equal(t, "", col("degree"))

	var stored model.RecruitingEvent
	require.NoError(t, fx.env.DB.First(&stored, "id = ?", fx.event.ID).Error)
	require.False(t, stored.IsActive)
	require.NotNil(t, stored.EndedAt)
	require.True(t, stored.EndedAt.Equal(now))

	_, err = CloseAndReport(context.Background(), fx.env.DB, mailer.Default(), now)
	require.ErrorIs(t, err, response.ErrNoActiveEvent)
	require.Len(t, fx.env.Mail.Sent(), 1)
}

func TestCloseAndReportEmailFailureKeepsEventActive(t *testing.T) {
	fx := setupFallEvent(t)
	fx.env.Mail.Fail(true)

	_, err := CloseAndReport(context.Background(), fx.env.DB, mailer.Default(), time.Now())
	require.ErrorIs(t, err, response.ErrEmail)

	var stored model.RecruitingEvent
	require.NoError(t, fx.env.DB.First(&stored, "id = ?", fx.event.ID).Error)
	require.True(t, stored.IsActive)
	require.Nil(t, stored.EndedAt)
}

func TestReportRoutes(t *testing.T) {
	fx := setupFallEvent(t)
	engine := fx.env.Engine(&ModuleReport{})
	_, adminToken := fx.env.CreateUser(t, "admin@company.com", model.RoleAdmin)
	_, recruiterToken := fx.env.CreateUser(t, "other@company.com", model.RoleRecruiter)

	w, _ := test.Call(t, engine, http.MethodPost, "/api/admin/report", recruiterToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	fx.env.Mail.Fail(true)
	w, resp := test.Call(t, engine, http.MethodPost, "/api/admin/report", adminToken, nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	test.ErrorEqual(t, response.ErrEmail, resp)

	fx.env.Mail.Fail(false)
	w, resp = test.Call(t, engine, http.MethodPost, "/api/admin/report", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success bool   `json:"success"`
		Result  Result `json:"result"`
	}
	test.Decode(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, fx.event.ID, body.Result.Event.ID)
	require.False(t, body.Result.Event.IsActive)

	// closed events can still be exported
	w, _ = test.Call(t, engine, http.MethodGet, "/api/admin/report/"+fx.event.ID+"/export", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, tools.ExcelContentType, w.Header().Get("Content-Type"))
	require.True(t, strings.Contains(w.Header().Get("Content-Disposition"), "report-Fall-2025.xlsx"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	require.Equal(t, []string{"Students", "Interviews"}, f.GetSheetList())

	students, err := f.GetRows("Students")
	require.NoError(t, err)
	require.Len(t, students, 2)
	require.Equal(t, "Event", students[0][0])
	require.Equal(t, "Jane Doe", students[1][2])

	interviews, err := f.GetRows("Interviews")
	require.NoError(t, err)
	require.Len(t, interviews, 2)
	require.Equal(t, "rec@company.com", interviews[1][1])

	w, _ = test.Call(t, engine, http.MethodGet, "/api/admin/report/"+"00000000-0000-0000-0000-000000000000"+"/export", adminToken, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
