package event

import (
	"net/http"
	"testing"
	"time"

	"recruiting-portal/internal/global/response"
	"recruiting-portal/internal/model"
	"recruiting-portal/test"

	"github.com/stretchr/testify/require"
)

func countActive(t *testing.T, env *test.Env) int64 {
	var n int64
	require.NoError(t, env.DB.Model(&model.RecruitingEvent{}).Where("is_active = ?", true).Count(&n).Error)
	return n
}

func TestCreateKeepsSingleActiveEvent(t *testing.T) {
	env := test.Setup(t)

	for _, name := range []string{"Spring 2025", "Summer 2025", "Fall 2025"} {
		created, err := Create(env.DB, name)
		require.NoError(t, err)
		require.True(t, created.IsActive)
		require.Equal(t, int64(1), countActive(t, env))
		time.Sleep(time.Millisecond)

		active, err := Active(env.DB)
		require.NoError(t, err)
		require.Equal(t, created.ID, active.ID)
	}

	events, err := List(env.DB)
	require.NoError(t, err)
	require.Len(t, events, 3)
	require.Equal(t, "Fall 2025", events[0].Name)
	for _, e := range events[1:] {
		require.False(t, e.IsActive)
		require.NotNil(t, e.EndedAt)
	}
}

func TestCreateRejectsBlankName(t *testing.T) {
	env := test.Setup(t)

	_, err := Create(env.DB, "   ")
	require.ErrorIs(t, err, response.ErrInvalidRequest)

	var n int64
	require.NoError(t, env.DB.Model(&model.RecruitingEvent{}).Count(&n).Error)
	require.Zero(t, n)
}

func TestCloseActiveWithoutActiveEvent(t *testing.T) {
	env := test.Setup(t)
	old := env.CreateEvent(t, "Closed 2024", false)

	_, err := CloseActive(env.DB, time.Now())
	require.ErrorIs(t, err, response.ErrNoActiveEvent)

	var after model.RecruitingEvent
	require.NoError(t, env.DB.First(&after, "id = ?", old.ID).Error)
	require.False(t, after.IsActive)
	require.Nil(t, after.EndedAt)
}

func TestCloseActiveStampsEndedAt(t *testing.T) {
	env := test.Setup(t)
	ev, err := Create(env.DB, "Fall 2025")
	require.NoError(t, err)

	now := time.Now().Truncate(time.Second)
	closed, err := CloseActive(env.DB, now)
	require.NoError(t, err)
	require.Equal(t, ev.ID, closed.ID)

	var stored model.RecruitingEvent
	require.NoError(t, env.DB.First(&stored, "id = ?", ev.ID).Error)
	require.False(t, stored.IsActive)
	require.NotNil(t, stored.EndedAt)
	require.True(t, stored.EndedAt.Equal(now))
	require.Zero(t, countActive(t, env))

	_, err = RequireActive(env.DB)
	require.ErrorIs(t, err, response.ErrNoActiveEvent)
}

func TestEventRoutesRequireAdmin(t *testing.T) {
	env := test.Setup(t)
	engine := env.Engine(&ModuleEvent{})
	_, recruiterToken := env.CreateUser(t, "recruiter@company.com", model.RoleRecruiter)
	_, studentToken := env.CreateUser(t, "student@uni.edu", model.RoleStudent)

	w, resp := test.Call(t, engine, http.MethodPost, "/api/admin/event", "", map[string]string{"name": "Fall 2025"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	test.ErrorEqual(t, response.ErrUnauthorized, resp)

	for _, token := range []string{recruiterToken, studentToken} {
		w, resp = test.Call(t, engine, http.MethodPost, "/api/admin/event", token, map[string]string{"name": "Fall 2025"})
		require.Equal(t, http.StatusForbidden, w.Code)
		test.ErrorEqual(t, response.ErrForbidden, resp)
	}

	var n int64
	require.NoError(t, env.DB.Model(&model.RecruitingEvent{}).Count(&n).Error)
	require.Zero(t, n)
}

func TestEventRoutes(t *testing.T) {
	env := test.Setup(t)
	engine := env.Engine(&ModuleEvent{})
	_, adminToken := env.CreateUser(t, "admin@company.com", model.RoleAdmin)

	w, resp := test.Call(t, engine, http.MethodPost, "/api/admin/event", adminToken, map[string]string{"name": "Fall 2025"})
	require.Equal(t, http.StatusOK, w.Code)
	test.NoError(t, resp)
	var created model.RecruitingEvent
	test.Decode(t, resp, &created)
	require.Equal(t, "Fall 2025", created.Name)
	require.True(t, created.IsActive)

	// counts are scoped to the active event
	older := env.CreateEvent(t, "Spring 2025", false)
	require.NoError(t, env.DB.Create(&model.Student{
		Model: model.Model{ID: "11111111-1111-1111-1111-111111111111"}, EventID: older.ID,
		FullName: "Old Applicant", Email: "old@uni.edu", University: "MIT",
	}).Error)
	require.NoError(t, env.DB.Create(&model.Student{
		Model: model.Model{ID: "22222222-2222-2222-2222-222222222222"}, EventID: created.ID,
		FullName: "Jane Doe", Email: "jane@uni.edu", University: "MIT",
	}).Error)

	w, resp = test.Call(t, engine, http.MethodGet, "/api/admin/event", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Events      []model.RecruitingEvent `json:"events"`
		ActiveEvent *struct {
			ID             string `json:"id"`
			Name           string `json:"name"`
			StudentCount   int64  `json:"studentCount"`
			InterviewCount int64  `json:"interviewCount"`
		} `json:"activeEvent"`
	}
	test.Decode(t, resp, &listed)
	require.Len(t, listed.Events, 2)
	require.NotNil(t, listed.ActiveEvent)
	require.Equal(t, created.ID, listed.ActiveEvent.ID)
	require.Equal(t, int64(1), listed.ActiveEvent.StudentCount)
	require.Zero(t, listed.ActiveEvent.InterviewCount)

	w, resp = test.Call(t, engine, http.MethodPost, "/api/admin/event", adminToken, map[string]string{"action": "close"})
	require.Equal(t, http.StatusOK, w.Code)
	test.NoError(t, resp)

	w, resp = test.Call(t, engine, http.MethodPost, "/api/admin/event", adminToken, map[string]string{"action": "close"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	test.ErrorEqual(t, response.ErrNoActiveEvent, resp)

	w, resp = test.Call(t, engine, http.MethodPost, "/api/admin/event", adminToken, map[string]string{"name": ""})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Event name is required", resp.Msg)
}
