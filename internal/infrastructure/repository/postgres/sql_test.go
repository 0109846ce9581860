package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("sql.ErrNoRows not detected")
	}
	if !isNotFound(fmt.Errorf("get row: %w", sql.ErrNoRows)) {
		t.Fatalf("wrapped sql.ErrNoRows not detected")
	}
	if isNotFound(errors.New("connection refused")) {
		t.Fatalf("unrelated error reported as not found")
	}
}
