package jwt

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// CookieName holds the session token for browser clients.
const CookieName = "access_token"

const claimsKey = "claims"

// TokenFromRequest reads the bearer token, falling back to the session
// cookie.
func TokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	token, _ := c.Cookie(CookieName)
	return token
}

func SetClaims(c *gin.Context, claims *Claims) {
	c.Set(claimsKey, claims)
}

func GetClaims(c *gin.Context) (claims *Claims, exist bool) {
	v, _ := c.Get(claimsKey)
	claims, exist = v.(*Claims)
	return
}
