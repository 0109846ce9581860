package category

import (
	"fmt"
	"time"
)

// Category is the top level of the competition hierarchy, usually a
// region or country ("Europe", "England").
type Category struct {
	ID         string
	ExternalID int64
	Name       string
	Slug       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (c Category) Validate() error {
	if c.ExternalID <= 0 {
		return fmt.Errorf("category external id must be greater than zero")
	}
	if c.Name == "" {
		return fmt.Errorf("category name is required")
	}

	return nil
}
