package season

import "context"

// Repository describes season persistence needs from use cases.
type Repository interface {
	GetByExternalID(ctx context.Context, externalID int64) (Season, bool, error)
	Insert(ctx context.Context, item Season) (Season, error)
	ListByTournament(ctx context.Context, tournamentExternalID int64) ([]Season, error)
}
