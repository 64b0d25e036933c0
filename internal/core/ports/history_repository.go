package ports

import (
	"context"

	"github.com/geotrace/geolocation-api/internal/core/domain"
)

// HistoryRepository defines persistence operations for search history.
// Every method takes the owning user id and must filter by it; there is no
// unscoped variant.
type HistoryRepository interface {
	Create(ctx context.Context, h *domain.History) (*domain.History, error)
	// ListByUser returns the user's records, most recent first.
	ListByUser(ctx context.Context, userID string) ([]*domain.History, error)
	// DeleteByUser removes the listed records that belong to userID and
	// returns how many were actually deleted. Ids owned by other users are
	// silently ignored.
	DeleteByUser(ctx context.Context, userID string, ids []string) (int64, error)
}
