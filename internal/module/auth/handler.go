package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"recruiting-portal/config"
	"recruiting-portal/internal/global/database"
	"recruiting-portal/internal/global/jwt"
	"recruiting-portal/internal/global/mailer"
	"recruiting-portal/internal/global/middleware"
	"recruiting-portal/internal/global/response"
	"recruiting-portal/tools"

	"github.com/gin-gonic/gin"
)

type linkReq struct {
	Email string `json:"email"`
	Next  string `json:"next"`
}

// RequestLink mails a one-time sign-in link.
func RequestLink(c *gin.Context) {
	var req linkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if !tools.IsEmail(req.Email) {
		response.Fail(c, response.ErrInvalidRequest.WithTips("Invalid email address"))
		return
	}
	if err := SendLink(c, database.RDB, mailer.Default(), req.Email, req.Next); err != nil {
		response.Fail(c, response.ErrEmail.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{"sent": true})
}

func redirect(c *gin.Context, path string) {
	c.Redirect(http.StatusFound, strings.TrimRight(config.Get().AppURL, "/")+path)
}

// Callback exchanges the code from the emailed link for a session cookie.
func Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		redirect(c, "/login?error=no_code")
		return
	}

	profile, next, err := Exchange(c, database.DB.WithContext(c), database.RDB, code, time.Now())
	switch {
	case errors.Is(err, ErrCodeInvalid):
		redirect(c, "/login?error=auth_exchange_error")
		return
	case err != nil:
		log.Error("auth callback failed", "error", err)
		redirect(c, "/login?error=auth_callback_error")
		return
	}

	token, err := jwt.CreateToken(profile.IdentityID)
	if err != nil {
		log.Error("issue token failed", "identity_id", profile.IdentityID, "error", err)
		redirect(c, "/login?error=auth_callback_error")
		return
	}
	setSessionCookie(c, token, int(jwt.Expire().Seconds()))

	log.Info("signed in", "profile_id", profile.ID, "role", profile.Role)
	if q := c.Query("next"); q != "" {
		next = q
	}
	redirect(c, SafeNext(next))
}

func setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(jwt.CookieName, token, maxAge, "/", "", config.Get().Mode == config.ModeRelease, true)
}

// Me returns the caller's profile, or null when signed out.
func Me(c *gin.Context) {
	profile := middleware.CurrentUser(c)
	if profile == nil {
		response.Success(c, nil)
		return
	}
	me := gin.H{
		"id":          profile.ID,
		"identity_id": profile.IdentityID,
		"email":       profile.Email(),
		"role":        profile.Role,
		"created_at":  profile.CreatedAt,
	}
	if claims, ok := jwt.GetClaims(c); ok && claims.ExpiresAt != nil {
		me["session_expires_at"] = claims.ExpiresAt.Time
	}
	response.Success(c, me)
}

func Logout(c *gin.Context) {
	setSessionCookie(c, "", -1)
	response.Success(c)
}
