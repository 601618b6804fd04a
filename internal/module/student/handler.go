package student

import (
	"recruiting-portal/internal/global/database"
	"recruiting-portal/internal/global/middleware"
	"recruiting-portal/internal/global/response"

	"github.com/gin-gonic/gin"
)

// SubmitApplication creates or replaces the caller's application.
func SubmitApplication(c *gin.Context) {
	profile, _ := middleware.GetProfile(c)

	var req Application
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err).WithTips("Invalid form data"))
		return
	}

	s, err := Submit(database.DB.WithContext(c), profile, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	log.Info("application submitted", "student_id", s.ID, "event_id", s.EventID)
	response.Success(c, s)
}

func GetApplication(c *gin.Context) {
	profile, _ := middleware.GetProfile(c)
	s, err := Find(database.DB.WithContext(c), profile.ID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, s)
}
