package services

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/gophnotes/internal/client/gateway"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

type AnalyticsService interface {
	Dashboard(ctx context.Context) (*models.Dashboard, error)
	Insights(ctx context.Context) (*models.Insights, error)
	// Overview fetches dashboard and insights concurrently. Either part may
	// be nil when its request failed; the error reports the first failure.
	Overview(ctx context.Context) (*models.Dashboard, *models.Insights, error)
}

type analyticsService struct {
	rq gateway.Requester
}

func NewAnalyticsService(rq gateway.Requester) AnalyticsService {
	return &analyticsService{rq: rq}
}

func (s *analyticsService) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var out models.Dashboard
	if err := s.rq.Do(ctx, &gateway.Request{Method: http.MethodGet, Path: "/analytics/dashboard", Out: &out}); err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}
	return &out, nil
}

func (s *analyticsService) Insights(ctx context.Context) (*models.Insights, error) {
	var out models.Insights
	if err := s.rq.Do(ctx, &gateway.Request{Method: http.MethodGet, Path: "/analytics/insights", Out: &out}); err != nil {
		return nil, fmt.Errorf("load insights: %w", err)
	}
	return &out, nil
}

func (s *analyticsService) Overview(ctx context.Context) (*models.Dashboard, *models.Insights, error) {
	var (
		dash *models.Dashboard
		ins  *models.Insights
	)

	// A plain group: one failed request must not cancel the other.
	var g errgroup.Group
	g.Go(func() error {
		d, err := s.Dashboard(ctx)
		dash = d
		return err
	})
	g.Go(func() error {
		i, err := s.Insights(ctx)
		ins = i
		return err
	})
	err := g.Wait()
	return dash, ins, err
}
