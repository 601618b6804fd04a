package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"recruiting-portal/config"
	"recruiting-portal/internal/global/mailer"
	"recruiting-portal/internal/global/response"
	"recruiting-portal/internal/model"
	"recruiting-portal/internal/module/auth"
	"recruiting-portal/tools"

	"gorm.io/gorm"
)

type Recruiter struct {
	ID         string     `json:"id"`
	IdentityID string     `json:"identity_id"`
	Email      string     `json:"email"`
	Role       model.Role `json:"role"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Recruiters lists recruiter profiles, newest first.
func Recruiters(db *gorm.DB) ([]Recruiter, error) {
	var profiles []model.Profile
	if err := db.Preload("Identity").
		Where("role = ?", model.RoleRecruiter).
		Order("created_at DESC").
		Find(&profiles).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	out := make([]Recruiter, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		out = append(out, Recruiter{
			ID:         p.ID,
			IdentityID: p.IdentityID,
			Email:      p.Email(),
			Role:       p.Role,
			CreatedAt:  p.CreatedAt,
		})
	}
	return out, nil
}

// Invite makes email a recruiter, creating the identity when needed, and
// mails a sign-in link. Profiles ranked above recruiter keep their role. A
// failed email does not undo the promotion; it is reported through emailErr.
func Invite(ctx context.Context, db *gorm.DB, sender mailer.Sender, email string) (profile *model.Profile, emailErr error, err error) {
	if !tools.IsEmail(email) {
		return nil, nil, response.ErrInvalidRequest.WithTips("Invalid email address")
	}
	identity, err := auth.FindOrCreateIdentity(db, email)
	if err != nil {
		return nil, nil, err
	}

	var current model.Profile
	err = db.Preload("Identity").Where("identity_id = ?", identity.ID).First(&current).Error
	switch {
	case err == nil && current.Role.Rank() > model.RoleRecruiter.Rank():
		// admins already have recruiter access; never demote them here
		profile = &current
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil, response.ErrDatabase.WithOrigin(err)
	default:
		profile, err = auth.SetRole(db, identity.ID, model.RoleRecruiter)
		if err != nil {
			return nil, nil, err
		}
	}

	loginURL := strings.TrimRight(config.Get().AppURL, "/") + "/login"
	_, emailErr = sender.Send(ctx, mailer.Message{
		To:      []string{identity.Email},
		Subject: "You have been invited as a recruiter",
		HTML: fmt.Sprintf(`<p>You now have recruiter access to the recruiting portal.</p>`+
			`<p><a href="%s">Sign in</a> with this email address to start reviewing candidates.</p>`, loginURL),
	})
	return profile, emailErr, nil
}

// Demote turns the recruiter with identityID back into a student.
func Demote(db *gorm.DB, identityID string) error {
	var profile model.Profile
	err := db.Where("identity_id = ?", identityID).First(&profile).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return response.ErrNotFound.WithTips("User not found")
	case err != nil:
		return response.ErrDatabase.WithOrigin(err)
	}
	if err := db.Model(&profile).Update("role", model.RoleStudent).Error; err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	return nil
}
