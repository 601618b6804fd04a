package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"recruiting-portal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, mode config.Mode, handler gin.HandlerFunc) (*httptest.ResponseRecorder, ResponseBody) {
	config.Set(&config.Config{Mode: mode, Log: config.Log{Level: "error"}})
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		defer Recovery(c)
		handler(c)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	var body ResponseBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestSuccess(t *testing.T) {
	w, body := serve(t, config.ModeRelease, func(c *gin.Context) {
		Success(c, gin.H{"ok": true})
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, int32(200), body.Code)
	require.Equal(t, "success", body.Msg)
	require.Equal(t, map[string]any{"ok": true}, body.Data)
}

func TestFailHidesOriginOutsideDebug(t *testing.T) {
	fail := func(c *gin.Context) {
		Fail(c, ErrDatabase.WithOrigin(errors.New("connection refused")))
	}

	w, body := serve(t, config.ModeRelease, fail)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, internalMessage, body.Msg)
	require.Empty(t, body.Origin)

	_, body = serve(t, config.ModeDebug, fail)
	require.Contains(t, body.Origin, "connection refused")
}

func TestRecovery(t *testing.T) {
	w, body := serve(t, config.ModeRelease, func(c *gin.Context) {
		panic("nil map")
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, ErrServerInternal.Code, body.Code)
}
