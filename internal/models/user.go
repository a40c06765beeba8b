// internal/models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/plmining/licensing-backend/internal/policy"
)

type User struct {
	BaseModel
	Name          string      `json:"name" gorm:"size:255"`
	Email         string      `json:"email" gorm:"uniqueIndex;size:255;not null"`
	EmailVerified *time.Time  `json:"email_verified"`
	Image         string      `json:"image"`
	PasswordHash  string      `json:"-" gorm:"column:password"`
	Role          policy.Role `json:"role" gorm:"type:role;not null;default:'OFFICER'"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

type PasswordResetToken struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email     string    `json:"email" gorm:"size:255;not null;index"`
	Token     string    `json:"-" gorm:"uniqueIndex;not null"`
	Expires   time.Time `json:"expires" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *PasswordResetToken) Expired(now time.Time) bool {
	return now.After(t.Expires)
}
