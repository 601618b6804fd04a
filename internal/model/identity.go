package model

import "time"

// Identity is a sign-in identity keyed by email address.
type Identity struct {
	Model
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	LastSignInAt *time.Time `json:"last_sign_in_at"`
}
