package admin

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"recruiting-portal/internal/global/mailer"
	"recruiting-portal/internal/global/response"
	"recruiting-portal/internal/model"
	"recruiting-portal/internal/module/student"
	"recruiting-portal/test"
	"recruiting-portal/tools"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestInvitePromotesAndMails(t *testing.T) {
	env := test.Setup(t)
	existing, _ := env.CreateUser(t, "jane@uni.edu", model.RoleStudent)

	profile, emailErr, err := Invite(context.Background(), env.DB, mailer.Default(), "Jane@Uni.edu")
	require.NoError(t, err)
	require.NoError(t, emailErr)
	require.Equal(t, existing.ID, profile.ID)
	require.Equal(t, model.RoleRecruiter, profile.Role)

	sent := env.Mail.Sent()
	require.Len(t, sent, 1)
	require.Equal(t, []string{"jane@uni.edu"}, sent[0].To)
	require.Contains(t, sent[0].HTML, "http://portal.test/login")

	// unknown addresses get an identity on the spot
	fresh, _, err := Invite(context.Background(), env.DB, mailer.Default(), "new@company.com")
	require.NoError(t, err)
	require.Equal(t, "new@company.com", fresh.Email())

	recruiters, err := Recruiters(env.DB)
	require.NoError(t, err)
	require.Len(t, recruiters, 2)
}

func TestInviteEmailFailureKeepsPromotion(t *testing.T) {
	env := test.Setup(t)
	env.Mail.Fail(true)

	profile, emailErr, err := Invite(context.Background(), env.DB, mailer.Default(), "rec@company.com")
	require.NoError(t, err)
	require.Error(t, emailErr)
	require.Equal(t, model.RoleRecruiter, profile.Role)

	_, _, err = Invite(context.Background(), env.DB, mailer.Default(), "nope")
	require.ErrorIs(t, err, response.ErrInvalidRequest)
}

func TestInviteKeepsAdminRole(t *testing.T) {
	env := test.Setup(t)
	admin, _ := env.CreateUser(t, "admin@company.com", model.RoleAdmin)

	profile, emailErr, err := Invite(context.Background(), env.DB, mailer.Default(), "admin@company.com")
	require.NoError(t, err)
	require.NoError(t, emailErr)
	require.Equal(t, admin.ID, profile.ID)
	require.Equal(t, model.RoleAdmin, profile.Role)
	require.Equal(t, "admin@company.com", profile.Email())

	var stored model.Profile
	require.NoError(t, env.DB.First(&stored, "id = ?", admin.ID).Error)
	require.Equal(t, model.RoleAdmin, stored.Role)
	require.Len(t, env.Mail.Sent(), 1)
}

func TestDemote(t *testing.T) {
	env := test.Setup(t)
	recruiter, _ := env.CreateUser(t, "rec@company.com", model.RoleRecruiter)

	require.NoError(t, Demote(env.DB, recruiter.IdentityID))
	var stored model.Profile
	require.NoError(t, env.DB.First(&stored, "id = ?", recruiter.ID).Error)
	require.Equal(t, model.RoleStudent, stored.Role)

	err := Demote(env.DB, uuid.NewString())
	require.ErrorIs(t, err, response.ErrNotFound)
}

func TestRemoveStudentCascades(t *testing.T) {
	env := test.Setup(t)
	ev := env.CreateEvent(t, "Fall 2025", true)
	profile, _ := env.CreateUser(t, "jane@uni.edu", model.RoleStudent)
	recruiter, _ := env.CreateUser(t, "rec@company.com", model.RoleRecruiter)
	s := &model.Student{Model: model.Model{ID: profile.ID}, EventID: ev.ID, FullName: "Jane Doe", Email: "jane@uni.edu", University: "MIT"}
	require.NoError(t, env.DB.Create(s).Error)
	require.NoError(t, env.DB.Create(&model.Interview{
		EventID: ev.ID, StudentID: s.ID, RecruiterID: recruiter.ID,
		RatingOverall: 3, RatingTech: 3, RatingComm: 3, Feedback: "ok",
	}).Error)

	removed, err := RemoveStudent(env.DB, s.ID)
	require.NoError(t, err)
	require.Equal(t, "Jane Doe", removed.FullName)

	count := func(m any, where string, args ...any) int64 {
		var n int64
		require.NoError(t, env.DB.Model(m).Where(where, args...).Count(&n).Error)
		return n
	}
	require.Zero(t, count(&model.Student{}, "id = ?", s.ID))
	require.Zero(t, count(&model.Interview{}, "student_id = ?", s.ID))
	require.Zero(t, count(&model.Profile{}, "id = ?", profile.ID))
	require.Zero(t, count(&model.Identity{}, "id = ?", profile.IdentityID))
	// the recruiter is untouched
	require.Equal(t, int64(1), count(&model.Profile{}, "id = ?", recruiter.ID))

	_, err = RemoveStudent(env.DB, s.ID)
	require.ErrorIs(t, err, response.ErrNotFound)
}

func TestStudentsPagination(t *testing.T) {
	env := test.Setup(t)
	old := env.CreateEvent(t, "Spring 2025", false)
	ev := env.CreateEvent(t, "Fall 2025", true)
	for i := 0; i < 5; i++ {
		eventID := ev.ID
		if i == 0 {
			eventID = old.ID
		}
		require.NoError(t, env.DB.Create(&model.Student{
			EventID: eventID, FullName: fmt.Sprintf("Applicant %d", i), Email: fmt.Sprintf("a%d@uni.edu", i), University: "MIT",
		}).Error)
		time.Sleep(time.Millisecond)
	}

	students, pagination, err := Students(env.DB, student.Filter{Page: tools.Page{Page: 2, PageSize: 2}})
	require.NoError(t, err)
	require.Len(t, students, 2)
	require.Equal(t, tools.Pagination{Page: 2, PageSize: 2, Total: 5, TotalPages: 3}, pagination)
	require.Equal(t, "Applicant 2", students[0].FullName)

	students, pagination, err = Students(env.DB, student.Filter{EventID: old.ID})
	require.NoError(t, err)
	require.Len(t, students, 1)
	require.Equal(t, int64(1), pagination.Total)
	require.Equal(t, tools.DefaultPageSize, pagination.PageSize)
}

func TestAdminRoutes(t *testing.T) {
	env := test.Setup(t)
	engine := env.Engine(&ModuleAdmin{})
	_, adminToken := env.CreateUser(t, "admin@company.com", model.RoleAdmin)
	_, recruiterToken := env.CreateUser(t, "rec@company.com", model.RoleRecruiter)

	w, _ := test.Call(t, engine, http.MethodGet, "/api/admin/recruiters", recruiterToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	env.Mail.Fail(true)
	w, resp := test.Call(t, engine, http.MethodPost, "/api/admin/invite", adminToken, map[string]string{"email": "new@company.com"})
	require.Equal(t, http.StatusOK, w.Code)
	var invited struct {
		Message   string `json:"message"`
		EmailSent bool   `json:"emailSent"`
		Recruiter struct {
			IdentityID string     `json:"identity_id"`
			Role       model.Role `json:"role"`
		} `json:"recruiter"`
	}
	test.Decode(t, resp, &invited)
	require.False(t, invited.EmailSent)
	require.Equal(t, model.RoleRecruiter, invited.Recruiter.Role)

	w, resp = test.Call(t, engine, http.MethodGet, "/api/admin/recruiters", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var recruiters []Recruiter
	test.Decode(t, resp, &recruiters)
	require.Len(t, recruiters, 2)

	w, _ = test.Call(t, engine, http.MethodDelete, "/api/admin/recruiters?id="+invited.Recruiter.IdentityID, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = test.Call(t, engine, http.MethodDelete, "/api/admin/recruiters?id="+uuid.NewString(), adminToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	w, resp = test.Call(t, engine, http.MethodDelete, "/api/admin/recruiters", adminToken, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "User ID is required", resp.Msg)

	ev := env.CreateEvent(t, "Fall 2025", true)
	s := &model.Student{EventID: ev.ID, FullName: "Jane Doe", Email: "jane@uni.edu", University: "MIT"}
	require.NoError(t, env.DB.Create(s).Error)

	w, resp = test.Call(t, engine, http.MethodGet, "/api/admin/students?university=mit&pageSize=10", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Students   []model.Student  `json:"students"`
		Pagination tools.Pagination `json:"pagination"`
	}
	test.Decode(t, resp, &listed)
	require.Len(t, listed.Students, 1)
	require.Equal(t, 10, listed.Pagination.PageSize)

	w, _ = test.Call(t, engine, http.MethodDelete, "/api/admin/students?id="+s.ID, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = test.Call(t, engine, http.MethodDelete, "/api/admin/students?id="+s.ID, adminToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w, resp = test.Call(t, engine, http.MethodGet, "/api/admin/resume-url?path=resumes/x-1.pdf", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var signed struct {
		URL string `json:"url"`
	}
	test.Decode(t, resp, &signed)
	require.Contains(t, signed.URL, "resumes/x-1.pdf")
}
