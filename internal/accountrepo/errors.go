package accountrepo

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// emailConstraint is the name postgres gives to the UNIQUE constraint of account.email.
const emailConstraint = "account_email_key"

// isUniqueViolation reports whether err was caused by the unique index on account.email.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Name() == "unique_violation" && pqErr.Constraint == emailConstraint
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			strings.Contains(liteErr.Error(), "UNIQUE constraint failed: account.email")
	}

	return false
}
