package admin

import (
	"recruiting-portal/internal/global/middleware"
	"recruiting-portal/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleAdmin) InitRouter(r *gin.RouterGroup) {
	adminGroup := r.Group("/admin", middleware.Auth(model.RoleAdmin))

	adminGroup.GET("/recruiters", ListRecruiters)
	adminGroup.POST("/recruiters", InviteRecruiter)
	adminGroup.DELETE("/recruiters", DemoteRecruiter)
	adminGroup.POST("/invite", InviteRecruiter)

	adminGroup.GET("/students", ListStudents)
	adminGroup.DELETE("/students", DeleteStudent)

	adminGroup.GET("/resume-url", ResumeURL)
}
