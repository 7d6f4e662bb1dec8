package models

import (
	"errors"
	"strings"
	"time"
)

const (
	RoleDonor     = "donor"
	RoleVolunteer = "volunteer"
)

type User struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	FullName       string     `json:"full_name"`
	PasswordHash   string     `json:"-"`
	Role           string     `json:"role"`
	IsApproved     bool       `json:"is_approved"`
	Phone          string     `json:"phone,omitempty"`
	ReceiveUpdates bool       `json:"receive_updates"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (u *User) Validate() error {
	if len(strings.TrimSpace(u.Username)) < 3 {
		return errors.New("username too short")
	}
	if !strings.Contains(u.Email, "@") {
		return errors.New("invalid email")
	}
	if u.Role == "" {
		u.Role = RoleDonor
	}
	if u.Role != RoleDonor && u.Role != RoleVolunteer {
		return errors.New("invalid role")
	}
	return nil
}

// IsVolunteer reports whether the user is an approved volunteer; only
// approved volunteers get the admin surface.
func (u *User) IsVolunteer() bool {
	return u.Role == RoleVolunteer && u.IsApproved
}

func (u *User) IsDeleted() bool { return u.DeletedAt != nil }
