package postgres

import (
	"database/sql"
	"errors"
	"strings"

	ierr "github.com/hospitalsupply/supplyrecon/internal/errors"
	"github.com/lib/pq"
)

func rowsAffected(result sql.Result) (int64, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Driver did not report affected rows").
			Mark(ierr.ErrDatabase)
	}
	return n, nil
}

// isUniqueViolation reports a duplicate key on either supported driver
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Name() == "unique_violation"
	}
	// go-sqlite3 only exposes the constraint through cgo types
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
