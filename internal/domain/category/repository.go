package category

import "context"

// Repository describes category persistence needs from use cases.
type Repository interface {
	GetByExternalID(ctx context.Context, externalID int64) (Category, bool, error)
	Insert(ctx context.Context, item Category) (Category, error)
	List(ctx context.Context) ([]Category, error)
}
