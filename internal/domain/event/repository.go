package event

import "context"

// Repository describes event persistence needs from use cases.
type Repository interface {
	GetByExternalID(ctx context.Context, externalID int64) (Event, bool, error)
	Insert(ctx context.Context, item Event) (Event, error)
	ListByGroup(ctx context.Context, groupExternalID int64) ([]Event, error)
}
