// Package models defines the client-side shapes of the notes API payloads.
package models

import "time"

// User is the identity snapshot held by the session.
type User struct {
	ID                string    `json:"id"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	Email             string    `json:"email"`
	Username          string    `json:"username"`
	Avatar            string    `json:"avatar,omitempty"`
	DateJoined        time.Time `json:"dateJoined"`
	LastProfileUpdate time.Time `json:"lastProfileUpdate"`
}

// FullName joins first and last name, skipping empty parts.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// UserPatch is a partial update of a User. Nil fields are left untouched.
type UserPatch struct {
	FirstName         *string    `json:"firstName,omitempty"`
	LastName          *string    `json:"lastName,omitempty"`
	Email             *string    `json:"email,omitempty"`
	Username          *string    `json:"username,omitempty"`
	Avatar            *string    `json:"avatar,omitempty"`
	LastProfileUpdate *time.Time `json:"lastProfileUpdate,omitempty"`
}

// Merge returns a copy of u with every non-nil field of p applied.
func (u User) Merge(p UserPatch) User {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.LastProfileUpdate != nil {
		u.LastProfileUpdate = *p.LastProfileUpdate
	}
	return u
}

// PatchFrom turns a full server copy of the user into a patch covering the
// editable fields.
func PatchFrom(u User) UserPatch {
	p := UserPatch{
		FirstName: &u.FirstName,
		LastName:  &u.LastName,
		Email:     &u.Email,
		Username:  &u.Username,
	}
	if u.Avatar != "" {
		p.Avatar = &u.Avatar
	}
	if !u.LastProfileUpdate.IsZero() {
		p.LastProfileUpdate = &u.LastProfileUpdate
	}
	return p
}

// Registration is the profile part of a sign-up request.
type Registration struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// PasswordChange is the body of a password update.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}
