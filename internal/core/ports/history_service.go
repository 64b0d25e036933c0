package ports

import (
	"context"

	"github.com/geotrace/geolocation-api/internal/core/domain"
)

// AddHistoryInput carries one search record to persist. UserID comes from the
// verified token claims, never from the request payload.
type AddHistoryInput struct {
	UserID    string
	IPAddress string
	// Location is the serialized geolocation payload, stored opaque.
	Location string
}

// HistoryService defines use-case operations for search history. All
// operations are scoped to the acting user.
type HistoryService interface {
	List(ctx context.Context, userID string) ([]*domain.History, error)
	Add(ctx context.Context, input AddHistoryInput) (*domain.History, error)
	Delete(ctx context.Context, userID string, ids []string) (int64, error)
}
