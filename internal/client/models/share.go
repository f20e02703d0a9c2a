package models

import (
	"fmt"
	"time"
)

// Permission is the access level granted on a shared note.
type Permission string

const (
	PermissionRead Permission = "read"
	PermissionEdit Permission = "edit"
)

// ParsePermission accepts "read" or "edit"; empty input means read.
func ParsePermission(s string) (Permission, error) {
	switch Permission(s) {
	case "", PermissionRead:
		return PermissionRead, nil
	case PermissionEdit:
		return PermissionEdit, nil
	default:
		return "", fmt.Errorf("unknown permission %q (want read or edit)", s)
	}
}

// Label is the human wording used in listings.
func (p Permission) Label() string {
	if p == PermissionEdit {
		return "Can Edit"
	}
	return "Read Only"
}

// Collaborator is the other party of a share.
type Collaborator struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar,omitempty"`
}

type Share struct {
	ID         string       `json:"id"`
	Permission Permission   `json:"permission"`
	SharedAt   time.Time    `json:"sharedAt"`
	SharedWith Collaborator `json:"sharedWith"`
}

type ShareRequest struct {
	EntryID        string     `json:"entryId"`
	ShareWithEmail string     `json:"shareWithEmail"`
	Permission     Permission `json:"permission"`
}

// SharedEntry is one of the caller's notes together with its shares.
type SharedEntry struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Synopsis    string    `json:"synopsis"`
	DateCreated time.Time `json:"dateCreated"`
	LastUpdated time.Time `json:"lastUpdated"`
	Shares      []Share   `json:"shares"`
}
