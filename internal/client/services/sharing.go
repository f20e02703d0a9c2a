package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/gateway"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

type SharingService interface {
	Share(ctx context.Context, entryID, email string, p models.Permission) error
	Shares(ctx context.Context, entryID string) ([]models.Share, error)
	Unshare(ctx context.Context, shareID string) error
	// MySharedEntries lists the caller's notes that have at least one share.
	MySharedEntries(ctx context.Context) ([]models.SharedEntry, error)
}

type sharingService struct {
	rq gateway.Requester
}

func NewSharingService(rq gateway.Requester) SharingService {
	return &sharingService{rq: rq}
}

func (s *sharingService) Share(ctx context.Context, entryID, email string, p models.Permission) error {
	email = strings.TrimSpace(email)
	switch {
	case entryID == "":
		return ErrEmptyID
	case email == "":
		return ErrEmailRequired
	}
	if p == "" {
		p = models.PermissionRead
	}

	body := models.ShareRequest{EntryID: entryID, ShareWithEmail: email, Permission: p}
	if err := s.rq.Do(ctx, &gateway.Request{Method: http.MethodPost, Path: "/collaboration/share", Body: body}); err != nil {
		return fmt.Errorf("share note %s: %w", entryID, err)
	}
	return nil
}

func (s *sharingService) Shares(ctx context.Context, entryID string) ([]models.Share, error) {
	if entryID == "" {
		return nil, ErrEmptyID
	}
	var out struct {
		Shares []models.Share `json:"shares"`
	}
	path := "/collaboration/entry/" + url.PathEscape(entryID) + "/shares"
	if err := s.rq.Do(ctx, &gateway.Request{Method: http.MethodGet, Path: path, Out: &out}); err != nil {
		return nil, fmt.Errorf("list shares of %s: %w", entryID, err)
	}
	return out.Shares, nil
}

func (s *sharingService) Unshare(ctx context.Context, shareID string) error {
	if shareID == "" {
		return ErrEmptyID
	}
	path := "/collaboration/share/" + url.PathEscape(shareID)
	if err := s.rq.Do(ctx, &gateway.Request{Method: http.MethodDelete, Path: path}); err != nil {
		return fmt.Errorf("remove share %s: %w", shareID, err)
	}
	return nil
}

func (s *sharingService) MySharedEntries(ctx context.Context) ([]models.SharedEntry, error) {
	var out struct {
		Entries []models.SharedEntry `json:"entries"`
	}
	if err := s.rq.Do(ctx, &gateway.Request{Method: http.MethodGet, Path: "/collaboration/my-shared-entries", Out: &out}); err != nil {
		return nil, fmt.Errorf("list shared notes: %w", err)
	}
	return out.Entries, nil
}
