package middleware

import (
	"bytes"
	"log/slog"
	"time"

	"recruiting-portal/internal/global/response"

	sentrylib "github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// maxResponseLogSize caps the response body copied into the request log.
const maxResponseLogSize = 4 * 1024

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseBodyWriter) Write(b []byte) (int, error) {
	if remaining := maxResponseLogSize - w.body.Len(); remaining > 0 {
		if len(b) > remaining {
			w.body.Write(b[:remaining])
		} else {
			w.body.Write(b)
		}
	}
	return w.ResponseWriter.Write(b)
}

// Logger writes one line per request. JSON bodies are kept only for failed
// requests; report exports and other binary bodies are never logged.
func Logger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		blw := &responseBodyWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = blw

		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		}
		if profile, ok := GetProfile(c); ok {
			attrs = append(attrs, "profile_id", profile.ID, "role", profile.Role)
		}
		if v, ok := c.Get(response.ErrorContextKey); ok {
			if e, ok := v.(*response.Error); ok {
				attrs = append(attrs, "code", e.Code, "response_body", blw.body.String())
			}
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error("HTTP Request", attrs...)
		case status >= 400:
			log.Warn("HTTP Request", attrs...)
		default:
			log.Info("HTTP Request", attrs...)
		}
	}
}

// SentryEnrichIP tags the request's Sentry scope with the caller address.
// Mount it after sentry.Middleware.
func SentryEnrichIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.ConfigureScope(func(scope *sentrylib.Scope) {
				clientIP := c.ClientIP()
				scope.SetUser(sentrylib.User{IPAddress: clientIP})
				scope.SetTag("client_ip", clientIP)
				if v := c.GetHeader("X-Forwarded-For"); v != "" {
					scope.SetTag("x_forwarded_for", v)
				}
				if v := c.GetHeader("X-Real-IP"); v != "" {
					scope.SetTag("x_real_ip", v)
				}
			})
		}
		c.Next()
	}
}
