package tools

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// SendBytes writes data as a download named displayName.
func SendBytes(c *gin.Context, displayName, contentType string, data []byte) {
	escaped := url.QueryEscape(displayName)
	c.Header(
		"Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, escaped, escaped),
	)
	c.Data(http.StatusOK, contentType, data)
}
