package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/geotrace/geolocation-api/internal/core/domain"
	"github.com/geotrace/geolocation-api/internal/core/ports"
)

// HistoryService implements search-history CRUD. Every operation is scoped to
// the user id resolved from token claims; the service never accepts an owner
// from request data.
type HistoryService struct {
	repo   ports.HistoryRepository
	logger zerolog.Logger
}

func NewHistoryService(repo ports.HistoryRepository, logger zerolog.Logger) *HistoryService {
	return &HistoryService{repo: repo, logger: logger}
}

// List returns the user's search history, most recent first.
func (s *HistoryService) List(ctx context.Context, userID string) ([]*domain.History, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Add persists one search record for the acting user.
func (s *HistoryService) Add(ctx context.Context, input ports.AddHistoryInput) (*domain.History, error) {
	h := &domain.History{
		UserID:    input.UserID,
		IPAddress: input.IPAddress,
		Location:  input.Location,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, h)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", input.UserID).Msg("failed to add history")
		return nil, err
	}

	s.logger.Info().Str("user_id", input.UserID).Str("ip", input.IPAddress).Msg("history added")
	return created, nil
}

// Delete removes the given records where they belong to userID and reports
// how many were deleted. Ids owned by someone else are ignored by the
// repository filter, so a cross-user delete is a no-op rather than an error.
func (s *HistoryService) Delete(ctx context.Context, userID string, ids []string) (int64, error) {
	deleted, err := s.repo.DeleteByUser(ctx, userID, ids)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to delete history")
		return 0, err
	}

	s.logger.Info().Str("user_id", userID).Int("requested", len(ids)).Int64("deleted", deleted).Msg("history deleted")
	return deleted, nil
}
