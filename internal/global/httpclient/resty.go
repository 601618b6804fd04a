package httpclient

import (
	"time"

	"recruiting-portal/internal/global/sentry/tracing"

	"github.com/go-resty/resty/v2"
)

var Client *resty.Client

func Init() {
	Client = New()
}

// New returns a client with the default timeout and Sentry tracing.
func New() *resty.Client {
	client := resty.New().SetTimeout(10 * time.Second)
	if tracing.IsEnabled() {
		tracing.SetupResty(client)
	}
	return client
}
