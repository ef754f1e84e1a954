package interfaces

import (
	"context"

	"PropScope/internal/model"
)

// StatsProvider every stats source must implement this
type StatsProvider interface {
	GetName() string
	// FetchAllStats walks every page for a query and returns the raw stat lines
	FetchAllStats(ctx context.Context, q model.StatsQuery) (*model.StatsResult, error)
	// SearchPlayers name search for the player picker
	SearchPlayers(ctx context.Context, query string) ([]model.BDLPlayer, error)
}

// PageCache time-bound store for raw upstream responses. Entries must expire.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, body []byte) error
}

// ViewStore persistence for saved filter sets
type ViewStore interface {
	Create(ctx context.Context, view *model.SavedView) error
	ListByUser(ctx context.Context, email string) ([]model.SavedView, error)
	GetByUUID(ctx context.Context, viewUUID string) (*model.SavedView, error)
	Delete(ctx context.Context, email, viewUUID string) (bool, error)
}
