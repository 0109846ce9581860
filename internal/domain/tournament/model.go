package tournament

import (
	"fmt"
	"time"
)

// Tournament is one competition ("EURO 2024", "Premier League") inside a
// category. The category is referenced by its external id only; the
// ingestion pipeline guarantees it exists before the tournament is created.
type Tournament struct {
	ID                 string
	ExternalID         int64
	Name               string
	Slug               string
	CategoryExternalID int64
	HasRounds          bool
	HasGroups          bool
	HasStandingsGroups bool
	HasPlayoffSeries   bool
	StartAt            *time.Time
	EndAt              *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (t Tournament) Validate() error {
	if t.ExternalID <= 0 {
		return fmt.Errorf("tournament external id must be greater than zero")
	}
	if t.Name == "" {
		return fmt.Errorf("tournament name is required")
	}
	if t.CategoryExternalID <= 0 {
		return fmt.Errorf("tournament category external id is required")
	}

	return nil
}
