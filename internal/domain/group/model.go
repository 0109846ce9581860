package group

import (
	"fmt"
	"time"
)

// Group is one stage inside a season ("Group A"). Its external id doubles
// as the tournament path segment the upstream uses when listing events.
type Group struct {
	ID               string
	ExternalID       int64
	Name             string
	SeasonExternalID int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (g Group) Validate() error {
	if g.ExternalID <= 0 {
		return fmt.Errorf("group external id must be greater than zero")
	}
	if g.Name == "" {
		return fmt.Errorf("group name is required")
	}
	if g.SeasonExternalID <= 0 {
		return fmt.Errorf("group season external id is required")
	}

	return nil
}
