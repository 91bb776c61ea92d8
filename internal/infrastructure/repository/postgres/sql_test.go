package postgres

import (
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/riskibarqy/bracket-pool/internal/domain/entry"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("expected true for sql.ErrNoRows")
	}
	if isNotFound(errors.New("pq: connection refused")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestRequireAffected(t *testing.T) {
	t.Run("passes when a row was written", func(t *testing.T) {
		if err := requireAffected(fakeResult{rows: 1}, "entry 7", entry.ErrNotFound); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("wraps the not-found sentinel when no row matched", func(t *testing.T) {
		err := requireAffected(fakeResult{rows: 0}, "entry 7", entry.ErrNotFound)
		if !errors.Is(err, entry.ErrNotFound) {
			t.Fatalf("expected entry.ErrNotFound, got %v", err)
		}
		if !strings.Contains(err.Error(), "entry 7") {
			t.Fatalf("unexpected error message: %v", err)
		}
	})

	t.Run("wraps a rows affected failure", func(t *testing.T) {
		cause := errors.New("driver does not report rows")
		err := requireAffected(fakeResult{rowsErr: cause}, "entry 7", entry.ErrNotFound)
		if !errors.Is(err, cause) {
			t.Fatalf("expected wrapped cause, got %v", err)
		}
	})
}

type fakeResult struct {
	rows    int64
	rowsErr error
}

func (f fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (f fakeResult) RowsAffected() (int64, error) { return f.rows, f.rowsErr }
