package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/successpath-portal/internal/backend"
	"github.com/noah-isme/successpath-portal/internal/display"
	"github.com/noah-isme/successpath-portal/internal/dto"
	"github.com/noah-isme/successpath-portal/internal/models"
)

const (
	recentMarksLimit    = 5
	recentNoticesLimit  = 5
	adminStatsCacheKey  = "portal:dashboard:admin:stats"
	dashboardFetchLimit = 4
)

// Dashboard slices.
const (
	SliceStats         = "stats"
	SliceAnnouncements = "announcements"
	SliceProfile       = "profile"
	SliceMarks         = "marks"
	SliceSummary       = "summary"
)

// DashboardBackend is the slice of the backend client read by the dashboards.
type DashboardBackend interface {
	DashboardStats(ctx context.Context, token string) (models.DashboardStats, error)
	ListAnnouncements(ctx context.Context, token string) ([]models.Announcement, error)
	Profile(ctx context.Context, token string) (models.Student, error)
	StudentMarks(ctx context.Context, token string, filter dto.MarksFilter) (dto.MarksPage, error)
	ResultsSummary(ctx context.Context, token string) (models.ResultsSummary, error)
	StudentAnnouncements(ctx context.Context, token string) ([]models.Announcement, error)
}

// DashboardService assembles the landing pages. Every slice is fetched
// concurrently; a failed slice is reported next to the ones that loaded.
type DashboardService interface {
	AdminDashboard(ctx context.Context, token string) (dto.AdminDashboardView, error)
	StudentDashboard(ctx context.Context, token string) (dto.StudentDashboardView, error)
	Results(ctx context.Context, token string) (dto.ResultsView, error)
}

type dashboardService struct {
	backend  DashboardBackend
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewDashboardService builds the dashboard aggregator. cache may be nil.
func NewDashboardService(backend DashboardBackend, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		backend:  backend,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func (s *dashboardService) AdminDashboard(ctx context.Context, token string) (dto.AdminDashboardView, error) {
	var (
		stats         models.DashboardStats
		announcements []models.Announcement
		statsErr      error
		noticesErr    error
	)

	var group errgroup.Group
	group.Go(func() error {
		stats, statsErr = s.adminStats(ctx, token)
		return nil
	})
	group.Go(func() error {
		announcements, noticesErr = s.backend.ListAnnouncements(ctx, token)
		return nil
	})
	_ = group.Wait()

	view := dto.AdminDashboardView{Announcements: []models.Announcement{}}
	if statsErr == nil {
		view.Stats = &stats
	}
	if noticesErr == nil {
		view.Announcements = limitAnnouncements(announcements, recentNoticesLimit)
	}
	var err error
	view.Errors, err = s.collect(
		sliceResult{SliceStats, "Failed to load dashboard statistics", statsErr},
		sliceResult{SliceAnnouncements, "Failed to load announcements", noticesErr},
	)
	return view, err
}

func (s *dashboardService) adminStats(ctx context.Context, token string) (models.DashboardStats, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, adminStatsCacheKey).Bytes(); err == nil {
			var stats models.DashboardStats
			if unmarshalErr := json.Unmarshal(cached, &stats); unmarshalErr == nil {
				s.logger.Debug().Msg("dashboard stats cache hit")
				return stats, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	stats, err := s.backend.DashboardStats(ctx, token)
	if err != nil {
		return models.DashboardStats{}, err
	}

	if s.cache != nil && s.cacheTTL > 0 {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, adminStatsCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}
	return stats, nil
}

func (s *dashboardService) StudentDashboard(ctx context.Context, token string) (dto.StudentDashboardView, error) {
	var (
		profile       models.Student
		marks         dto.MarksPage
		announcements []models.Announcement
		summary       models.ResultsSummary
		profileErr    error
		marksErr      error
		noticesErr    error
		summaryErr    error
	)

	var group errgroup.Group
	group.SetLimit(dashboardFetchLimit)
	group.Go(func() error {
		profile, profileErr = s.backend.Profile(ctx, token)
		return nil
	})
	group.Go(func() error {
		marks, marksErr = s.backend.StudentMarks(ctx, token, dto.MarksFilter{Page: 1, Limit: recentMarksLimit})
		return nil
	})
	group.Go(func() error {
		announcements, noticesErr = s.backend.StudentAnnouncements(ctx, token)
		return nil
	})
	group.Go(func() error {
		summary, summaryErr = s.backend.ResultsSummary(ctx, token)
		return nil
	})
	_ = group.Wait()

	view := dto.StudentDashboardView{
		RecentMarks:   []dto.MarksRow{},
		Announcements: []models.Announcement{},
	}
	if profileErr == nil {
		view.Profile = &profile
		view.Initials = display.Initials(profile.Name)
	}
	if marksErr == nil {
		entries := marks.Marks
		if len(entries) > recentMarksLimit {
			entries = entries[:recentMarksLimit]
		}
		view.RecentMarks = marksRows(entries)
	}
	if noticesErr == nil {
		view.Announcements = limitAnnouncements(announcements, recentNoticesLimit)
	}
	if summaryErr == nil {
		view.Summary = &summary
	}
	var err error
	view.Errors, err = s.collect(
		sliceResult{SliceProfile, "Failed to load profile", profileErr},
		sliceResult{SliceMarks, "Failed to load marks", marksErr},
		sliceResult{SliceAnnouncements, "Failed to load announcements", noticesErr},
		sliceResult{SliceSummary, "Failed to load results summary", summaryErr},
	)
	return view, err
}

func (s *dashboardService) Results(ctx context.Context, token string) (dto.ResultsView, error) {
	var (
		marks      dto.MarksPage
		summary    models.ResultsSummary
		marksErr   error
		summaryErr error
	)

	var group errgroup.Group
	group.Go(func() error {
		marks, marksErr = s.backend.StudentMarks(ctx, token, dto.MarksFilter{})
		return nil
	})
	group.Go(func() error {
		summary, summaryErr = s.backend.ResultsSummary(ctx, token)
		return nil
	})
	_ = group.Wait()

	view := dto.ResultsView{Marks: []dto.MarksRow{}}
	if marksErr == nil {
		view.Marks = marksRows(marks.Marks)
	}
	if summaryErr == nil {
		view.Summary = &summary
	}
	var err error
	view.Errors, err = s.collect(
		sliceResult{SliceMarks, "Failed to load marks", marksErr},
		sliceResult{SliceSummary, "Failed to load results summary", summaryErr},
	)
	return view, err
}

type sliceResult struct {
	name     string
	fallback string
	err      error
}

// collect turns failed slices into view errors. The page as a whole fails when
// the backend rejected the token or when no slice loaded at all.
func (s *dashboardService) collect(results ...sliceResult) ([]dto.SliceError, error) {
	var (
		out     []dto.SliceError
		first   error
		revoked error
	)
	for _, result := range results {
		if result.err == nil {
			continue
		}
		s.logger.Warn().Err(result.err).Str("slice", result.name).Msg("dashboard slice failed")

		failure := &ActionError{
			Action:  "load_" + result.name,
			Message: backend.MessageOf(result.err, result.fallback),
			Err:     result.err,
		}
		out = append(out, dto.SliceError{Slice: result.name, Message: failure.Message})
		if first == nil {
			first = failure
		}
		if revoked == nil && backend.IsUnauthorized(result.err) {
			revoked = failure
		}
	}

	switch {
	case revoked != nil:
		return out, revoked
	case len(out) == len(results):
		return out, first
	default:
		return out, nil
	}
}

func limitAnnouncements(items []models.Announcement, limit int) []models.Announcement {
	if items == nil {
		return []models.Announcement{}
	}
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
