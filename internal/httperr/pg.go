package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

// IsExclusionConflict reports whether err is the appointments_no_overlap
// exclusion constraint firing, i.e. a booking lost the race after passing
// the in-transaction check on another connection.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation
}

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
