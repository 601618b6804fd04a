package model

type Role string

const (
	RoleStudent   Role = "student"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

// Rank orders roles: student < recruiter < admin. Unknown roles rank below
// student.
func (r Role) Rank() int {
	switch r {
	case RoleStudent:
		return 0
	case RoleRecruiter:
		return 1
	case RoleAdmin:
		return 2
	default:
		return -1
	}
}

func (r Role) Valid() bool {
	return r.Rank() >= 0
}

// AtLeast reports whether r is min or above.
func (r Role) AtLeast(min Role) bool {
	return r.Valid() && r.Rank() >= min.Rank()
}

// Profile is the application principal attached to an Identity. One role at
// a time.
type Profile struct {
	Model
	IdentityID string    `gorm:"type:char(36);uniqueIndex;not null" json:"identity_id"`
	Role       Role      `gorm:"type:varchar(16);not null;default:student;index" json:"role"`
	Identity   *Identity `gorm:"foreignKey:IdentityID" json:"identity,omitempty"`
}

func (Profile) TableName() string {
	return "app_user"
}

// Email returns the email of the preloaded identity, or "".
func (p *Profile) Email() string {
	if p.Identity == nil {
		return ""
	}
	return p.Identity.Email
}
