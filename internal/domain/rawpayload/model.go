package rawpayload

import "time"

// Payload is one archived upstream response body. The archive exists for
// replay and debugging; writing it must never fail an ingestion run.
type Payload struct {
	ID          int64
	Source      string
	EntityType  string
	EntityKey   string
	RequestPath string
	PayloadJSON string
	PayloadHash string
	CreatedAt   time.Time
}
