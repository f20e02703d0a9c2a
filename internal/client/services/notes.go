package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/gophnotes/internal/client/gateway"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

type NoteService interface {
	List(ctx context.Context) ([]models.Entry, error)
	Get(ctx context.Context, id string) (*models.Entry, error)
	Create(ctx context.Context, e models.CreateEntry) (*models.Entry, error)
	Update(ctx context.Context, id string, u models.UpdateEntry) error
	// Delete moves the note to the trash.
	Delete(ctx context.Context, id string) error
	Trash(ctx context.Context) ([]models.Entry, error)
	Restore(ctx context.Context, id string) error
}

type entriesEnvelope struct {
	Entries []models.Entry `json:"entries"`
}

type entryEnvelope struct {
	Entry models.Entry `json:"entry"`
}

type noteService struct {
	rq gateway.Requester
}

func NewNoteService(rq gateway.Requester) NoteService {
	return &noteService{rq: rq}
}

func (s *noteService) List(ctx context.Context) ([]models.Entry, error) {
	var out entriesEnvelope
	if err := s.rq.Do(ctx, &gateway.Request{Method: http.MethodGet, Path: "/entries", Out: &out}); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return out.Entries, nil
}

func (s *noteService) Get(ctx context.Context, id string) (*models.Entry, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	var out entryEnvelope
	if err := s.rq.Do(ctx, &gateway.Request{Method: http.MethodGet, Path: "/entry/" + url.PathEscape(id), Out: &out}); err != nil {
		return nil, fmt.Errorf("get note %s: %w", id, err)
	}
	return &out.Entry, nil
}

func (s *noteService) Create(ctx context.Context, e models.CreateEntry) (*models.Entry, error) {
	if e.Title == "" {
		return nil, fmt.Errorf("create note: %w", ErrTitleRequired)
	}
	var out entryEnvelope
	if err := s.rq.Do(ctx, &gateway.Request{Method: http.MethodPost, Path: "/entries", Body: e, Out: &out}); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return &out.Entry, nil
}

func (s *noteService) Update(ctx context.Context, id string, u models.UpdateEntry) error {
	if id == "" {
		return ErrEmptyID
	}
	if u.Empty() {
		return nil
	}
	if err := s.rq.Do(ctx, &gateway.Request{Method: http.MethodPatch, Path: "/entry/" + url.PathEscape(id), Body: u}); err != nil {
		return fmt.Errorf("update note %s: %w", id, err)
	}
	return nil
}

func (s *noteService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}
	if err := s.rq.Do(ctx, &gateway.Request{Method: http.MethodDelete, Path: "/entry/" + url.PathEscape(id)}); err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	return nil
}

func (s *noteService) Trash(ctx context.Context) ([]models.Entry, error) {
	var out entriesEnvelope
	if err := s.rq.Do(ctx, &gateway.Request{Method: http.MethodGet, Path: "/entries/trash", Out: &out}); err != nil {
		return nil, fmt.Errorf("list trash: %w", err)
	}
	return out.Entries, nil
}

func (s *noteService) Restore(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}
	if err := s.rq.Do(ctx, &gateway.Request{Method: http.MethodPatch, Path: "/entry/restore/" + url.PathEscape(id)}); err != nil {
		return fmt.Errorf("restore note %s: %w", id, err)
	}
	return nil
}
