package middleware

import (
	"time"

	"recruiting-portal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Cors admits the web app at APP_URL with credentials so the session cookie
// travels on cross-origin calls.
func Cors() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = []string{config.Get().AppURL}
	cfg.AllowCredentials = true
	cfg.AddAllowHeaders("Authorization")
	cfg.MaxAge = 12 * time.Hour
	return cors.New(cfg)
}
