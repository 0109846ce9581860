package team

import (
	"fmt"
	"time"
)

// Team is a club or national side. Teams are shared across tournaments and
// are created lazily the first time an event references them; no tournament
// owns a team.
type Team struct {
	ID         string
	ExternalID int64
	Name       string
	ShortCode  string
	Country    string
	Ranking    int
	Slug       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (t Team) Validate() error {
	if t.ExternalID <= 0 {
		return fmt.Errorf("team external id must be greater than zero")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
