package auth

import (
	"github.com/gin-gonic/gin"
)

func (m *ModuleAuth) InitRouter(r *gin.RouterGroup) {
	authGroup := r.Group("/auth")
	authGroup.POST("", RequestLink)
	authGroup.GET("/callback", Callback)
	authGroup.GET("/me", Me)
	authGroup.POST("/logout", Logout)
}
