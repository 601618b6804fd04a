package student

import (
	"recruiting-portal/internal/global/middleware"
	"recruiting-portal/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleStudent) InitRouter(r *gin.RouterGroup) {
	studentGroup := r.Group("/student")
	studentGroup.GET("", middleware.OnlyRole(model.RoleStudent, "Only students can view their profile"), GetApplication)
	studentGroup.POST("", middleware.OnlyRole(model.RoleStudent, "Only students can submit applications"), SubmitApplication)

	uploadGroup := r.Group("/upload", middleware.Auth(model.RoleStudent))
	uploadGroup.POST("", CreateUploadURL)
	uploadGroup.GET("", CreateDownloadURL)
}
