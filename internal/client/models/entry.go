package models

import "time"

// Entry is a markdown note.
type Entry struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Synopsis    string    `json:"synopsis"`
	Content     string    `json:"content"`
	IsDeleted   bool      `json:"isDeleted"`
	DateCreated time.Time `json:"dateCreated"`
	LastUpdated time.Time `json:"lastUpdated"`
	UserID      string    `json:"userId"`
}

type CreateEntry struct {
	Title    string `json:"title"`
	Synopsis string `json:"synopsis"`
	Content  string `json:"content"`
}

// UpdateEntry carries only the fields being changed.
type UpdateEntry struct {
	Title    *string `json:"title,omitempty"`
	Synopsis *string `json:"synopsis,omitempty"`
	Content  *string `json:"content,omitempty"`
}

// Empty reports whether the update changes nothing.
func (u UpdateEntry) Empty() bool {
	return u.Title == nil && u.Synopsis == nil && u.Content == nil
}
