package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"recruiting-portal/config"
	"recruiting-portal/internal/global/mailer"
	"recruiting-portal/internal/global/response"
	"recruiting-portal/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	codePrefix = "auth:code:"
	CodeTTL    = 15 * time.Minute
)

var ErrCodeInvalid = errors.New("login code unknown or expired")

type pendingLogin struct {
	Email string `json:"email"`
	Next  string `json:"next"`
}

// SafeNext keeps next only when it is a path on this site.
func SafeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return "/"
	}
	return next
}

// IssueCode stores a one-time login code for email.
func IssueCode(ctx context.Context, rdb *redis.Client, email, next string) (string, error) {
	payload, err := json.Marshal(pendingLogin{Email: normalizeEmail(email), Next: SafeNext(next)})
	if err != nil {
		return "", err
	}
	code := uuid.NewString()
	if err := rdb.Set(ctx, codePrefix+code, payload, CodeTTL).Err(); err != nil {
		return "", fmt.Errorf("store login code: %w", err)
	}
	return code, nil
}

// CallbackURL is the link mailed to the user.
func CallbackURL(code, next string) string {
	q := url.Values{}
	q.Set("code", code)
	q.Set("next", SafeNext(next))
	return strings.TrimRight(config.Get().AppURL, "/") + "/" + config.Get().Prefix + "/auth/callback?" + q.Encode()
}

// SendLink issues a code for email and mails the sign-in link.
func SendLink(ctx context.Context, rdb *redis.Client, sender mailer.Sender, email, next string) error {
	code, err := IssueCode(ctx, rdb, email, next)
	if err != nil {
		return err
	}
	link := CallbackURL(code, next)
	_, err = sender.Send(ctx, mailer.Message{
		To:      []string{normalizeEmail(email)},
		Subject: "Your sign-in link",
		HTML: fmt.Sprintf(`<p>Click the link below to sign in. It expires in %d minutes.</p><p><a href="%s">Sign in</a></p>`,
			int(CodeTTL.Minutes()), link),
	})
	return err
}

// Exchange consumes code and signs its owner in, provisioning the identity
// and a student profile on first use. The code cannot be replayed.
func Exchange(ctx context.Context, db *gorm.DB, rdb *redis.Client, code string, now time.Time) (*model.Profile, string, error) {
	raw, err := rdb.GetDel(ctx, codePrefix+code).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, "", ErrCodeInvalid
	case err != nil:
		return nil, "", fmt.Errorf("consume login code: %w", err)
	}
	var pending pendingLogin
	if err := json.Unmarshal(raw, &pending); err != nil {
		return nil, "", ErrCodeInvalid
	}

	identity, err := FindOrCreateIdentity(db, pending.Email)
	if err != nil {
		return nil, "", err
	}
	if err := touchSignIn(db, identity, now); err != nil {
		return nil, "", response.ErrDatabase.WithOrigin(err)
	}
	profile, err := EnsureProfile(db, identity.ID)
	if err != nil {
		return nil, "", err
	}
	return profile, pending.Next, nil
}
