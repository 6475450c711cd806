package services

import (
	"gorm.io/gorm"

	"kairo_backend/internal/repositories"
	"kairo_backend/internal/services/dto"
	"kairo_backend/pkg/apperrors"
)

type AnalyticsService interface {
	MonthlyStats(db *gorm.DB, recruiterUserID string, months int) (*dto.MonthlyAnalyticsResponse, error)
	Funnel(db *gorm.DB, recruiterUserID string) (*dto.FunnelAnalyticsResponse, error)
}

type AnalyticsServiceImpl struct {
	analyticsRepo repositories.AnalyticsRepository
	profileRepo   repositories.ProfileRepository
}

func NewAnalyticsService(analyticsRepo repositories.AnalyticsRepository, profileRepo repositories.ProfileRepository) AnalyticsService {
	return &AnalyticsServiceImpl{analyticsRepo: analyticsRepo, profileRepo: profileRepo}
}

func (s *AnalyticsServiceImpl) MonthlyStats(db *gorm.DB, recruiterUserID string, months int) (*dto.MonthlyAnalyticsResponse, error) {
	recruiter, err := s.recruiterID(db, recruiterUserID)
	if err != nil {
		return nil, err
	}
	stats, err := s.analyticsRepo.GetMonthlyStats(recruiter, months)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats == nil {
		stats = []repositories.MonthlyStat{}
	}
	return &dto.MonthlyAnalyticsResponse{Months: stats}, nil
}

func (s *AnalyticsServiceImpl) Funnel(db *gorm.DB, recruiterUserID string) (*dto.FunnelAnalyticsResponse, error) {
	recruiter, err := s.recruiterID(db, recruiterUserID)
	if err != nil {
		return nil, err
	}
	funnel, err := s.analyticsRepo.GetFunnelStats(recruiter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	active, err := s.analyticsRepo.GetActivePostingsCount(recruiter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	total, err := s.analyticsRepo.GetTotalApplicationsCount(recruiter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.FunnelAnalyticsResponse{
		Funnel:         *funnel,
		ActivePostings: active,
		Applications:   total,
	}, nil
}

func (s *AnalyticsServiceImpl) recruiterID(db *gorm.DB, recruiterUserID string) (string, error) {
	recruiter, err := s.profileRepo.FindRecruiterByUserID(db, recruiterUserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRecruiterNotFound) {
			return "", apperrors.NewNotFoundError("profile", "Recruiter profile not found")
		}
		return "", apperrors.InternalError(err)
	}
	return recruiter.ID, nil
}
