package rawpayload

import "context"

// Repository stores archived upstream payloads keyed by content hash.
type Repository interface {
	UpsertMany(ctx context.Context, items []Payload) error
}
