package season

import (
	"fmt"
	"time"
)

// Season is one edition of a tournament. Year is kept as the raw upstream
// string ("24", "2023/2024") since formats differ per competition.
type Season struct {
	ID                   string
	ExternalID           int64
	Name                 string
	Year                 string
	TournamentExternalID int64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (s Season) Validate() error {
	if s.ExternalID <= 0 {
		return fmt.Errorf("season external id must be greater than zero")
	}
	if s.Name == "" {
		return fmt.Errorf("season name is required")
	}
	if s.TournamentExternalID <= 0 {
		return fmt.Errorf("season tournament external id is required")
	}

	return nil
}
