package users

import (
	"errors"
	"fmt"
	"time"

	"wayfarer/internal/domain/errs"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrDuplicateEmail    = fmt.Errorf("a user with that email already exists: %w", errs.ErrConflict)
	ErrDuplicateUsername = fmt.Errorf("a user with that username already exists: %w", errs.ErrConflict)
	ErrInvalidCredential = errors.New("invalid credentials")
	QueryTimeoutDuration = time.Second * 5
)

// BcryptCost matches the cost the accounts were originally hashed with.
const BcryptCost = 10

type User struct {
	ID         int64      `json:"id"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	Password   password   `json:"-"`
	FullName   *string    `json:"full_name"`
	Bio        *string    `json:"bio,omitempty"`
	Country    string     `json:"country"`
	Role       string     `json:"role"`
	IsActive   bool       `json:"is_active"`
	IsVerified bool       `json:"is_verified"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ProfileUpdate holds the fields a user may change on their own profile.
// Nil fields are left untouched.
type ProfileUpdate struct {
	FullName *string
	Bio      *string
	Country  *string
}

// AdminUserRow is a user as listed on the admin dashboard.
type AdminUserRow struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	FullName    *string   `json:"full_name"`
	ReviewCount int       `json:"review_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Password struct to store plain text and hash
type password struct {
	text *string
	hash []byte
}

func (p *password) Set(text string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(text), BcryptCost)
	if err != nil {
		return err
	}

	p.text = &text
	p.hash = hash

	return nil
}

// Compare returns ErrInvalidCredential when text does not match the hash.
func (p *password) Compare(text string) error {
	if err := bcrypt.CompareHashAndPassword(p.hash, []byte(text)); err != nil {
		return ErrInvalidCredential
	}
	return nil
}
