package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/gateway"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

// MaxAvatarSize is the largest avatar the API accepts.
const MaxAvatarSize = 5 << 20

// UserUpdater receives profile changes confirmed by the server.
type UserUpdater interface {
	UpdateUser(p models.UserPatch)
}

type ProfileService interface {
	Update(ctx context.Context, p models.UserPatch) (*models.User, error)
	ChangePassword(ctx context.Context, pc models.PasswordChange) error
	UploadAvatar(ctx context.Context, path string) (*models.User, error)
}

type profileService struct {
	rq      gateway.Requester
	updater UserUpdater
}

func NewProfileService(rq gateway.Requester, updater UserUpdater) ProfileService {
	return &profileService{rq: rq, updater: updater}
}

type userEnvelope struct {
	User models.User `json:"user"`
}

func (s *profileService) Update(ctx context.Context, p models.UserPatch) (*models.User, error) {
	var out userEnvelope
	if err := s.rq.Do(ctx, &gateway.Request{Method: http.MethodPatch, Path: "/user/", Body: p, Out: &out}); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	s.updater.UpdateUser(models.PatchFrom(out.User))
	return &out.User, nil
}

func (s *profileService) ChangePassword(ctx context.Context, pc models.PasswordChange) error {
	if pc.NewPassword != pc.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if err := s.rq.Do(ctx, &gateway.Request{Method: http.MethodPost, Path: "/auth/password", Body: pc}); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

func (s *profileService) UploadAvatar(ctx context.Context, path string) (*models.User, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open avatar: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat avatar: %w", err)
	}
	if info.Size() > MaxAvatarSize {
		return nil, ErrImageTooLarge
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("read avatar: %w", err)
	}
	contentType := imageContentType(path, head[:n])
	if contentType == "" {
		return nil, ErrNotAnImage
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("read avatar: %w", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="avatar"; filename=%q`, filepath.Base(path)))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("encode avatar: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("encode avatar: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("encode avatar: %w", err)
	}

	var out userEnvelope
	req := &gateway.Request{
		Method:      http.MethodPatch,
		Path:        "/user/avatar",
		Body:        &buf,
		ContentType: mw.FormDataContentType(),
		Out:         &out,
	}
	if err := s.rq.Do(ctx, req); err != nil {
		return nil, fmt.Errorf("upload avatar: %w", err)
	}
	s.updater.UpdateUser(models.PatchFrom(out.User))
	return &out.User, nil
}

// imageContentType returns the image MIME type of a file, judged by its
// extension first and its content second, or "" if it is not an image.
func imageContentType(path string, head []byte) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); strings.HasPrefix(ct, "image/") {
		return ct
	}
	if ct := http.DetectContentType(head); strings.HasPrefix(ct, "image/") {
		return ct
	}
	return ""
}
