package services

import (
	"context"

	"gorm.io/gorm"

	"kairo_backend/internal/integrations"
	"kairo_backend/internal/logger"
	"kairo_backend/internal/repositories"
	"kairo_backend/internal/services/dto"
	"kairo_backend/pkg/apperrors"
)

// StatsService aggregates coding-platform stats for the links saved on an
// applicant profile.
type StatsService interface {
	CodingStats(ctx context.Context, db *gorm.DB, userID string) (*dto.CodingStatsDTO, error)
}

type StatsServiceImpl struct {
	profileRepo repositories.ProfileRepository
	leetcode    *integrations.LeetCodeClient
	codeforces  *integrations.CodeforcesClient
	github      *integrations.GitHubClient
}

func NewStatsService(
	profileRepo repositories.ProfileRepository,
	leetcode *integrations.LeetCodeClient,
	codeforces *integrations.CodeforcesClient,
	github *integrations.GitHubClient,
) StatsService {
	return &StatsServiceImpl{
		profileRepo: profileRepo,
		leetcode:    leetcode,
		codeforces:  codeforces,
		github:      github,
	}
}

// CodingStats fetches whatever platforms the profile links to. A failing
// platform is logged and skipped rather than failing the whole response.
func (s *StatsServiceImpl) CodingStats(ctx context.Context, db *gorm.DB, userID string) (*dto.CodingStatsDTO, error) {
	profile, err := s.profileRepo.FindApplicantByUserID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.NewNotFoundError("profile", "Applicant profile not found")
		}
		return nil, apperrors.InternalError(err)
	}

	stats := &dto.CodingStatsDTO{}

	if profile.LeetcodeLink != "" {
		username := integrations.ExtractLeetCodeUsername(profile.LeetcodeLink)
		if lc, err := s.leetcode.GetStats(ctx, username); err != nil {
			logger.CtxWarn(ctx, "leetcode stats unavailable", "username", username, "error", err)
		} else {
			stats.LeetCode = &dto.LeetCodeStats{
				Username:     username,
				TotalSolved:  lc.TotalSolved,
				EasySolved:   lc.EasySolved,
				MediumSolved: lc.MediumSolved,
				HardSolved:   lc.HardSolved,
				Ranking:      lc.Ranking,
			}
		}
	}

	if profile.CodeforcesLink != "" {
		handle := integrations.ExtractCodeforcesHandle(profile.CodeforcesLink)
		if cf, err := s.codeforces.GetUser(ctx, handle); err != nil {
			logger.CtxWarn(ctx, "codeforces stats unavailable", "handle", handle, "error", err)
		} else {
			stats.Codeforces = &dto.CodeforcesStats{
				Handle:    cf.Handle,
				Rating:    cf.Rating,
				MaxRating: cf.MaxRating,
				Rank:      cf.Rank,
			}
		}
	}

	if profile.GithubLink != "" {
		username := integrations.ExtractGitHubUsername(profile.GithubLink)
		if gh, err := s.github.GetUser(ctx, username); err != nil {
			logger.CtxWarn(ctx, "github stats unavailable", "username", username, "error", err)
		} else {
			stats.GitHub = &dto.GitHubStats{
				Username:    gh.Login,
				PublicRepos: gh.PublicRepos,
				Followers:   gh.Followers,
				AvatarURL:   gh.AvatarURL,
			}
		}
	}

	return stats, nil
}
