package report

import (
	"context"
	"time"
)

const leaderboardSize = 10

type Service struct {
	repo  Repository
	cache *Cache
	now   func() time.Time
}

func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache, now: time.Now}
}

func (s *Service) Points(ctx context.Context) (PointsSummary, error) {
	var summary PointsSummary
	if s.cache.Get(ctx, "report:points", &summary) {
		return summary, nil
	}

	rows, err := s.repo.PointsRows(ctx)
	if err != nil {
		return PointsSummary{}, err
	}

	summary = SummarizePoints(rows)
	s.cache.Set(ctx, "report:points", summary)
	return summary, nil
}

func (s *Service) Compliance(ctx context.Context) (ComplianceDistribution, error) {
	var dist ComplianceDistribution
	if s.cache.Get(ctx, "report:compliance", &dist) {
		return dist, nil
	}

	rows, err := s.repo.ScoreRows(ctx)
	if err != nil {
		return ComplianceDistribution{}, err
	}

	dist = DistributeCompliance(rows)
	s.cache.Set(ctx, "report:compliance", dist)
	return dist, nil
}

func (s *Service) Penalties(ctx context.Context) (PenaltySummary, error) {
	var summary PenaltySummary
	if s.cache.Get(ctx, "report:penalties", &summary) {
		return summary, nil
	}

	rows, err := s.repo.PenaltyRows(ctx)
	if err != nil {
		return PenaltySummary{}, err
	}

	summary = SummarizePenalties(rows, s.now())
	s.cache.Set(ctx, "report:penalties", summary)
	return summary, nil
}

func (s *Service) Wards(ctx context.Context) ([]WardScore, error) {
	var board []WardScore
	if s.cache.Get(ctx, "report:wards", &board) {
		return board, nil
	}

	rows, err := s.repo.ScoreRows(ctx)
	if err != nil {
		return nil, err
	}

	board = WardLeaderboard(rows, leaderboardSize)
	s.cache.Set(ctx, "report:wards", board)
	return board, nil
}
