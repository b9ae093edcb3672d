package models

import (
	"time"
)

type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Username    string    `json:"username" gorm:"uniqueIndex;not null"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null"`
	Password    string    `json:"-" gorm:"not null"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	IsActive    bool      `json:"is_active" gorm:"not null;default:false"`
	IsSuperuser bool      `json:"is_superuser" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Profile *Profile `json:"profile,omitempty" gorm:"foreignKey:UserID"`
}

func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Profile carries the marketplace role of an account. Exactly one per user.
type Profile struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	UserID            uint       `json:"user_id" gorm:"uniqueIndex;not null"`
	Role              Role       `json:"role" gorm:"type:varchar(10);not null"`
	IsVerified        bool       `json:"is_verified" gorm:"not null;default:false"`
	VerificationToken *string    `json:"-" gorm:"type:varchar(64)"`
	TokenCreatedAt    *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// IssueVerificationToken stores a fresh token on an unverified profile.
func (p *Profile) IssueVerificationToken(token string, now time.Time) {
	p.IsVerified = false
	p.VerificationToken = &token
	p.TokenCreatedAt = &now
}

// MarkVerified clears the token; a verified profile never holds one.
func (p *Profile) MarkVerified() {
	p.IsVerified = true
	p.VerificationToken = nil
	p.TokenCreatedAt = nil
}
