package auth

import (
	"strings"
	"time"

	"recruiting-portal/internal/global/response"
	"recruiting-portal/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindOrCreateIdentity returns the identity for email, creating it on first
// sight.
func FindOrCreateIdentity(db *gorm.DB, email string) (*model.Identity, error) {
	identity := model.Identity{}
	if err := db.Where(model.Identity{Email: normalizeEmail(email)}).FirstOrCreate(&identity).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &identity, nil
}

// EnsureProfile gives identityID a student profile unless it already has
// one, and returns the stored profile either way.
func EnsureProfile(db *gorm.DB, identityID string) (*model.Profile, error) {
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "identity_id"}},
		DoNothing: true,
	}).Create(&model.Profile{IdentityID: identityID, Role: model.RoleStudent}).Error
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return loadProfile(db, identityID)
}

// SetRole creates or updates the profile of identityID with role.
func SetRole(db *gorm.DB, identityID string, role model.Role) (*model.Profile, error) {
	if !role.Valid() {
		return nil, response.ErrInvalidRequest.WithTips("unknown role")
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "identity_id"}},
		DoUpdates: clause.Assignments(map[string]any{"role": role, "updated_at": time.Now()}),
	}).Create(&model.Profile{IdentityID: identityID, Role: role}).Error
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return loadProfile(db, identityID)
}

func loadProfile(db *gorm.DB, identityID string) (*model.Profile, error) {
	var profile model.Profile
	if err := db.Preload("Identity").Where("identity_id = ?", identityID).First(&profile).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &profile, nil
}

func touchSignIn(db *gorm.DB, identity *model.Identity, now time.Time) error {
	identity.LastSignInAt = &now
	return db.Model(identity).Update("last_sign_in_at", now).Error
}
