package sentry

import (
	"fmt"
	"time"

	"recruiting-portal/config"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// CodedError is implemented by response.Error. Only 5xx codes are reported.
type CodedError interface {
	error
	GetCode() int32
}

// Init configures the SDK. Without a DSN it is a no-op.
func Init() error {
	cfg := config.Get()
	if cfg.Sentry.Dsn == "" {
		return nil
	}

	tracesSampleRate := cfg.Sentry.SampleRate
	if tracesSampleRate <= 0 {
		tracesSampleRate = 1.0
	}
	environment := cfg.Sentry.Environment
	if environment == "" {
		environment = string(cfg.Mode)
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.Dsn,
		Environment:      environment,
		Release:          "recruiting-portal@1.0.0",
		SampleRate:       1.0,
		EnableTracing:    true,
		TracesSampleRate: tracesSampleRate,
		EnableLogs:       true,
	})
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	return nil
}

// Middleware returns the sentrygin middleware, or a pass-through when Sentry
// is not configured.
func Middleware() gin.HandlerFunc {
	if config.Get().Sentry.Dsn == "" {
		return func(c *gin.Context) { c.Next() }
	}
	return sentrygin.New(sentrygin.Options{
		Repanic:         true, // middleware.Recovery writes the response
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// CaptureException reports err with the request and caller attached.
func CaptureException(c *gin.Context, err error) {
	if config.Get().Sentry.Dsn == "" || !shouldReport(err) {
		return
	}
	hub := sentrygin.GetHubFromContext(c)
	if hub == nil {
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetRequest(c.Request)
		scope.SetTag("path", c.Request.URL.Path)
		scope.SetTag("method", c.Request.Method)
		if profile, ok := c.Get("profile"); ok {
			scope.SetUser(sentry.User{
				IPAddress: c.ClientIP(),
				Data:      map[string]string{"profile": fmt.Sprintf("%+v", profile)},
			})
		}
		hub.CaptureException(err)
	})
}

func shouldReport(err error) bool {
	if e, ok := err.(CodedError); ok {
		return e.GetCode() >= 50000
	}
	return true
}

// Flush waits for buffered events. Call before exit.
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}
