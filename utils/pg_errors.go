package utils

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// TranslateDBError maps the known Postgres error codes to the fixed
// user-facing strings the UI shows; anything else falls back to the raw
// message.
func TranslateDBError(err error) string {
	if err == nil {
		return ""
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return "This record already exists. Please use a different identifier."
		case "23503":
			return "Cannot complete operation due to related records."
		}
	}

	if strings.Contains(err.Error(), "Insufficient stock") {
		return err.Error()
	}

	return err.Error()
}
