package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/andressep95/leadcapture/internal/domain"
	"github.com/andressep95/leadcapture/internal/metrics"
	"github.com/andressep95/leadcapture/internal/repository"
)

type AnalyticsService struct {
	pageViewRepo   repository.PageViewRepository
	submissionRepo repository.SubmissionRepository
}

func NewAnalyticsService(pageViewRepo repository.PageViewRepository, submissionRepo repository.SubmissionRepository) *AnalyticsService {
	return &AnalyticsService{
		pageViewRepo:   pageViewRepo,
		submissionRepo: submissionRepo,
	}
}

// TrackPageView appends a page view. An empty form source is rejected before
// the store is touched.
func (s *AnalyticsService) TrackPageView(ctx context.Context, formSource, userAgent, ipAddress string) error {
	if formSource == "" {
		return fmt.Errorf("%w: form source is required", domain.ErrBadRequest)
	}

	view := &domain.PageView{
		FormSource: formSource,
		UserAgent:  userAgent,
		IPAddress:  ipAddress,
	}
	if err := s.pageViewRepo.Create(ctx, view); err != nil {
		return err
	}

	metrics.PageViews.WithLabelValues(formSource).Inc()
	return nil
}

// SubmissionSummary reports submissions and page views per form source
func (s *AnalyticsService) SubmissionSummary(ctx context.Context) (*domain.SubmissionAnalytics, error) {
	submissions, err := s.submissionRepo.CountByFormSource(ctx)
	if err != nil {
		return nil, err
	}

	views, err := s.pageViewRepo.CountByFormSource(ctx)
	if err != nil {
		return nil, err
	}

	funnels := map[string]*domain.FunnelSummary{}
	funnel := func(source string) *domain.FunnelSummary {
		f, ok := funnels[source]
		if !ok {
			f = &domain.FunnelSummary{FormSource: source}
			funnels[source] = f
		}
		return f
	}

	summary := &domain.SubmissionAnalytics{Funnels: []domain.FunnelSummary{}}
	for _, c := range submissions {
		f := funnel(c.FormSource)
		f.Submissions = c.Count
		f.LatestSubmissionAt = c.Latest
		summary.TotalSubmissions += c.Count
	}
	for _, c := range views {
		f := funnel(c.FormSource)
		f.PageViews = c.Count
		f.LatestViewAt = c.Latest
		summary.TotalPageViews += c.Count
	}

	for _, f := range funnels {
		if f.PageViews > 0 {
			f.ConversionRate = math.Round(float64(f.Submissions)/float64(f.PageViews)*10000) / 10000
		}
		summary.Funnels = append(summary.Funnels, *f)
	}
	sort.Slice(summary.Funnels, func(i, j int) bool {
		return summary.Funnels[i].FormSource < summary.Funnels[j].FormSource
	})

	return summary, nil
}
