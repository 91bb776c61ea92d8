package postgres

import (
	"database/sql"
	"fmt"
)

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

// requireAffected turns a zero-row update or delete into the given
// not-found sentinel so callers can tell a missing row apart from a
// successful write.
func requireAffected(res sql.Result, subject string, missing error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", subject, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", subject, missing)
	}

	return nil
}
