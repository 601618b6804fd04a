package event

import (
	"recruiting-portal/internal/global/middleware"
	"recruiting-portal/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleEvent) InitRouter(r *gin.RouterGroup) {
	eventGroup := r.Group("/admin/event", middleware.Auth(model.RoleAdmin))
	eventGroup.GET("", ListEvents)
	eventGroup.POST("", CreateOrClose)
}
