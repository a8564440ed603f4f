package repository

import (
	"errors"

	"github.com/lib/pq"
)

// ErrDuplicate signals a storage-level uniqueness violation (username,
// email, jti or furniture name). Callers map it to a 409 Conflict, the
// same way an application-level duplicate check is reported.
var ErrDuplicate = errors.New("duplicate record")

// uniqueViolation is the Postgres error code for a unique constraint.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
