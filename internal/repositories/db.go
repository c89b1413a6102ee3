package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"messagely/internal/middlewares"
)

// ext returns the transaction bound to the request context if one is
// present, falling back to the shared connection pool otherwise.
func ext(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx := middlewares.GetTxFromContext(ctx); tx != nil {
		return tx
	}
	return db
}
