package group

import "context"

// Repository describes group persistence needs from use cases.
type Repository interface {
	GetByExternalID(ctx context.Context, externalID int64) (Group, bool, error)
	Insert(ctx context.Context, item Group) (Group, error)
	ListBySeason(ctx context.Context, seasonExternalID int64) ([]Group, error)
}
