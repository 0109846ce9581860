package postgres

import (
	"database/sql"
	"errors"
)

const conflictIgnoreExternalID = "ON CONFLICT (external_id) DO NOTHING"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
