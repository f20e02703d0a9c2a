package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/gateway"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

type CaptchaService interface {
	Generate(ctx context.Context) (*models.Captcha, error)
	// SaveImage writes the challenge image to a new file in dir (the system
	// temp dir when empty) and returns its path.
	SaveImage(c *models.Captcha, dir string) (string, error)
}

type captchaService struct {
	rq gateway.Requester
}

func NewCaptchaService(rq gateway.Requester) CaptchaService {
	return &captchaService{rq: rq}
}

func (s *captchaService) Generate(ctx context.Context) (*models.Captcha, error) {
	var out models.Captcha
	if err := s.rq.Do(ctx, &gateway.Request{Method: http.MethodGet, Path: "/captcha/generate", Out: &out}); err != nil {
		return nil, fmt.Errorf("generate captcha: %w", err)
	}
	return &out, nil
}

func (s *captchaService) SaveImage(c *models.Captcha, dir string) (string, error) {
	data, mediaType, err := decodeDataURL(c.Image)
	if err != nil {
		return "", err
	}

	f, err := createTemp(dir, "captcha-*"+imageExt(mediaType))
	if err != nil {
		return "", fmt.Errorf("save captcha: %w", err)
	}

	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("save captcha: %w", err)
	}
	return f.Name(), nil
}

type tempFile interface {
	io.WriteCloser
	Name() string
}

var createTemp = func(dir, pattern string) (tempFile, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// decodeDataURL decodes "data:<type>[;base64],<payload>".
func decodeDataURL(s string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, "", ErrBadCaptchaImage
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", ErrBadCaptchaImage
	}

	mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}

	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrBadCaptchaImage, err)
		}
		return data, mediaType, nil
	}

	text, err := url.PathUnescape(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrBadCaptchaImage, err)
	}
	return []byte(text), mediaType, nil
}

func imageExt(mediaType string) string {
	switch mediaType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/svg+xml":
		return ".svg"
	default:
		return ".img"
	}
}
