package tournament

import "context"

// Repository describes tournament persistence needs from use cases.
type Repository interface {
	GetByExternalID(ctx context.Context, externalID int64) (Tournament, bool, error)
	Insert(ctx context.Context, item Tournament) (Tournament, error)
}
