package service

import (
	"context"

	"kioku/internal/httpapi/models"
	"kioku/internal/httpapi/repository"
)

// DashboardStats is the per-user summary shown on the dashboard page.
type DashboardStats struct {
	TotalAnime  int64 `json:"total_anime"`
	TotalManga  int64 `json:"total_manga"`
	TotalManhwa int64 `json:"total_manhwa"`
	Completed   int64 `json:"completed"`
	InProgress  int64 `json:"in_progress"`
}

type DashboardService interface {
	Summary(ctx context.Context, userID string) (*DashboardStats, []models.MediaItem, error)
}

type dashboardService struct {
	mediaRepo repository.MediaRepository
}

func NewDashboardService(mediaRepo repository.MediaRepository) DashboardService {
	return &dashboardService{mediaRepo: mediaRepo}
}

func (s *dashboardService) Summary(ctx context.Context, userID string) (*DashboardStats, []models.MediaItem, error) {
	stats := &DashboardStats{}

	var err error
	if stats.TotalAnime, err = s.mediaRepo.CountByType(ctx, userID, "anime"); err != nil {
		return nil, nil, err
	}
	if stats.TotalManga, err = s.mediaRepo.CountByType(ctx, userID, "manga"); err != nil {
		return nil, nil, err
	}
	if stats.TotalManhwa, err = s.mediaRepo.CountByType(ctx, userID, "manhwa"); err != nil {
		return nil, nil, err
	}
	if stats.Completed, err = s.mediaRepo.CountByStatus(ctx, userID, "completed"); err != nil {
		return nil, nil, err
	}
	if stats.InProgress, err = s.mediaRepo.CountByStatus(ctx, userID, "watching", "reading"); err != nil {
		return nil, nil, err
	}

	recent, err := s.mediaRepo.RecentlyUpdated(ctx, userID, 5)
	if err != nil {
		return nil, nil, err
	}

	return stats, recent, nil
}
