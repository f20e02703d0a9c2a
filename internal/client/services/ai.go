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

type AIService interface {
	Enhance(ctx context.Context, text string, mode models.EnhanceMode) (string, error)
	SuggestTags(ctx context.Context, content string) ([]string, error)
	SmartSearch(ctx context.Context, query string) ([]models.Entry, error)
	Generate(ctx context.Context, r models.GenerateRequest) (*models.Entry, error)
	ContentSuggestions(ctx context.Context, topic string) ([]string, error)
}

type aiService struct {
	rq gateway.Requester
}

func NewAIService(rq gateway.Requester) AIService {
	return &aiService{rq: rq}
}

type suggestionsEnvelope struct {
	Suggestions []string `json:"suggestions"`
}

func (s *aiService) Enhance(ctx context.Context, text string, mode models.EnhanceMode) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("enhance text: %w", ErrTextRequired)
	}
	var out struct {
		EnhancedText string `json:"enhancedText"`
	}
	req := &gateway.Request{
		Method: http.MethodPost,
		Path:   "/ai/enhance-text",
		Body:   models.EnhanceRequest{Text: text, Mode: mode},
		Out:    &out,
	}
	if err := s.rq.Do(ctx, req); err != nil {
		return "", fmt.Errorf("enhance text: %w", err)
	}
	return out.EnhancedText, nil
}

func (s *aiService) SuggestTags(ctx context.Context, content string) ([]string, error) {
	var out suggestionsEnvelope
	req := &gateway.Request{
		Method: http.MethodPost,
		Path:   "/ai/suggest-tags",
		Body:   map[string]string{"content": content},
		Out:    &out,
	}
	if err := s.rq.Do(ctx, req); err != nil {
		return nil, fmt.Errorf("suggest tags: %w", err)
	}
	return out.Suggestions, nil
}

func (s *aiService) SmartSearch(ctx context.Context, query string) ([]models.Entry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrQueryRequired
	}
	var out entriesEnvelope
	req := &gateway.Request{
		Method: http.MethodGet,
		Path:   "/ai/smart-search",
		Query:  url.Values{"query": {query}},
		Out:    &out,
	}
	if err := s.rq.Do(ctx, req); err != nil {
		return nil, fmt.Errorf("smart search: %w", err)
	}
	return out.Entries, nil
}

func (s *aiService) Generate(ctx context.Context, r models.GenerateRequest) (*models.Entry, error) {
	if strings.TrimSpace(r.Topic) == "" {
		return nil, ErrTopicRequired
	}
	var out entryEnvelope
	if err := s.rq.Do(ctx, &gateway.Request{Method: http.MethodPost, Path: "/ai/generate-note", Body: r, Out: &out}); err != nil {
		return nil, fmt.Errorf("generate note: %w", err)
	}
	return &out.Entry, nil
}

func (s *aiService) ContentSuggestions(ctx context.Context, topic string) ([]string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrTopicRequired
	}
	var out suggestionsEnvelope
	req := &gateway.Request{
		Method: http.MethodPost,
		Path:   "/ai/content-suggestions",
		Body:   map[string]string{"topic": topic},
		Out:    &out,
	}
	if err := s.rq.Do(ctx, req); err != nil {
		return nil, fmt.Errorf("content suggestions: %w", err)
	}
	return out.Suggestions, nil
}
