package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/EnesCagri/kaankutuphane/internal/dto"
	"github.com/EnesCagri/kaankutuphane/internal/repository"
)

// LeaderboardService ranks readers by how many distinct books they have
// finished.
type LeaderboardService interface {
	Ranking(ctx context.Context, req *dto.LeaderboardRequest) ([]dto.LeaderboardEntry, error)
}

type leaderboardService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLeaderboardService builds the LeaderboardService.
func NewLeaderboardService(repo *repository.Repository, logger *zap.Logger) LeaderboardService {
	return &leaderboardService{repo: repo, logger: logger}
}

// ────────────────────── Ranking ──────────────────────

// Ranking returns readers ordered by read count descending, ties broken by
// user id ascending for a stable order. Users with zero reads are absent,
// not ranked last. An optional classroom filter narrows the field to that
// classroom's students before ranking.
func (s *leaderboardService) Ranking(ctx context.Context, req *dto.LeaderboardRequest) ([]dto.LeaderboardEntry, error) {
	statuses, err := s.repo.ReadingStatus.ListAll(ctx)
	if err != nil {
		s.logger.Error("listing reading statuses failed", zap.Error(err))
		return nil, err
	}

	counts := make(map[string]int)
	for i := range statuses {
		counts[statuses[i].UserID]++
	}
	if len(counts) == 0 {
		return []dto.LeaderboardEntry{}, nil
	}

	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	users, err := s.repo.User.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("querying readers failed", zap.Error(err))
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, 0, len(users))
	for i := range users {
		u := &users[i]
		if req.ClassroomID != "" {
			if u.ClassroomID == nil || *u.ClassroomID != req.ClassroomID {
				continue
			}
		}
		entries = append(entries, dto.LeaderboardEntry{
			UserID:    u.UserID,
			Name:      u.Name,
			AvatarURL: u.AvatarURL,
			ReadCount: counts[u.UserID],
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].ReadCount != entries[j].ReadCount {
			return entries[i].ReadCount > entries[j].ReadCount
		}
		return entries[i].UserID < entries[j].UserID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
