package report

import (
	"recruiting-portal/internal/global/middleware"
	"recruiting-portal/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleReport) InitRouter(r *gin.RouterGroup) {
	reportGroup := r.Group("/admin/report", middleware.Auth(model.RoleAdmin))
	reportGroup.POST("", CloseEvent)
	reportGroup.GET("/:id/export", Export)
}
