package response

import (
	"fmt"
	"net/http"

	"recruiting-portal/config"
	"recruiting-portal/internal/global/logger"
	"recruiting-portal/internal/global/sentry"

	"github.com/gin-gonic/gin"
)

// ResponseBody is the envelope of every JSON response.
type ResponseBody struct {
	Code   int32  `json:"code"`
	Msg    string `json:"msg"`
	Data   any    `json:"data,omitempty"`
	Origin string `json:"origin,omitempty"`
}

func Success(c *gin.Context, data ...any) {
	body := ResponseBody{Code: 200, Msg: "success"}
	if len(data) > 0 {
		body.Data = data[0]
	}
	c.JSON(http.StatusOK, body)
}

// Fail writes err as the response. Server errors are logged and sent to
// Sentry before the generic body goes out.
func Fail(c *gin.Context, err error) {
	e := AsError(err)
	c.Set(ErrorContextKey, e)

	if e.Server() {
		logger.WithContext(logger.New("Response"), c).Error("request failed",
			"path", c.Request.URL.Path,
			"code", e.Code,
			"error", e.Origin,
		)
		sentry.CaptureException(c, e)
	}

	body := ResponseBody{Code: e.Code, Msg: e.Message}
	if config.Get().Mode == config.ModeDebug {
		body.Origin = e.Origin
	}
	c.AbortWithStatusJSON(e.Status(), body)
}

// Recovery turns a panic in a handler into a 500. Deferred by
// middleware.Recovery.
func Recovery(c *gin.Context) {
	if r := recover(); r != nil {
		var err error
		switch v := r.(type) {
		case error:
			err = v
		default:
			err = fmt.Errorf("panic: %v", v)
		}
		Fail(c, ErrServerInternal.WithOrigin(err))
	}
}

// ErrorContextKey stores the failing *Error on the gin.Context for the
// request logger.
const ErrorContextKey = "error"
