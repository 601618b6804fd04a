package middleware

import (
	"errors"

	"recruiting-portal/internal/global/database"
	"recruiting-portal/internal/global/jwt"
	"recruiting-portal/internal/global/logger"
	"recruiting-portal/internal/global/response"
	"recruiting-portal/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const profileKey = "profile"

// CurrentUser resolves the caller's profile from the request token. It
// returns nil for a missing or invalid token and for an identity without a
// profile. The result is cached on the context.
func CurrentUser(c *gin.Context) *model.Profile {
	if profile, ok := GetProfile(c); ok {
		return profile
	}
	claims, ok := jwt.ParseToken(jwt.TokenFromRequest(c))
	if !ok {
		return nil
	}

	var profile model.Profile
	err := database.DB.WithContext(c).
		Preload("Identity").
		Where("identity_id = ?", claims.IdentityID).
		First(&profile).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WithContext(logger.New("Auth"), c).Error("load profile failed",
				"identity_id", claims.IdentityID, "error", err)
		}
		return nil
	}

	jwt.SetClaims(c, claims)
	c.Set(profileKey, &profile)
	return &profile
}

// GetProfile returns the profile stored by Auth or CurrentUser.
func GetProfile(c *gin.Context) (*model.Profile, bool) {
	v, _ := c.Get(profileKey)
	profile, ok := v.(*model.Profile)
	return profile, ok
}

// unauthenticated tells a bad token apart from no credentials at all.
func unauthenticated(c *gin.Context) *response.Error {
	if token := jwt.TokenFromRequest(c); token != "" {
		if _, ok := jwt.ParseToken(token); !ok {
			return response.ErrTokenInvalid
		}
	}
	return response.ErrUnauthorized
}

// Auth rejects callers without a profile (401) and callers ranked below min
// (403).
func Auth(min model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := CurrentUser(c)
		if profile == nil {
			response.Fail(c, unauthenticated(c))
			return
		}
		if !profile.Role.AtLeast(min) {
			response.Fail(c, response.ErrForbidden)
			return
		}
		c.Next()
	}
}

// OnlyRole admits exactly one role. tips replaces the 403 message.
func OnlyRole(role model.Role, tips string) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := CurrentUser(c)
		if profile == nil {
			response.Fail(c, unauthenticated(c))
			return
		}
		if profile.Role != role {
			response.Fail(c, response.ErrForbidden.WithTips(tips))
			return
		}
		c.Next()
	}
}
