package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	GetByExternalID(ctx context.Context, externalID int64) (Team, bool, error)
	Insert(ctx context.Context, item Team) (Team, error)
}
