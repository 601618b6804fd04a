package interview

import (
	"recruiting-portal/internal/global/middleware"
	"recruiting-portal/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleInterview) InitRouter(r *gin.RouterGroup) {
	recruiterOnly := middleware.Auth(model.RoleRecruiter)

	// both paths were used by clients; one handler serves them
	r.POST("/interview", recruiterOnly, RecordInterview)
	r.GET("/students", recruiterOnly, ListStudentSummaries)

	recruiterGroup := r.Group("/recruiter", recruiterOnly)
	recruiterGroup.POST("/interview", RecordInterview)
	recruiterGroup.GET("/students", ListStudents)
	recruiterGroup.GET("/student/:id", GetStudent)
}
