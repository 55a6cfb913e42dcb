package service

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/unirecords/registrar-backend/internal/apperr"
)

// conflictFromUnique maps a unique-constraint violation raised by the storage
// backstop into the matching domain conflict. The application-level check is
// the business-rule fast path; the constraint catches races the check misses
// under concurrent inserts. Any other error passes through unchanged.
func conflictFromUnique(err error, reason string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperr.Conflict(reason)
	}
	return err
}
