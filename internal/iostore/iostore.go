// Package iostore implements the store.Store contract on top of a
// connected db.Operator. PostgreSQL writes go through pgx batches,
// SQLite writes through prepared database/sql statements. Both backends
// share the query builder from this package.
package iostore

import (
	"github.com/gnames/gnweather/pkg/db"
	"github.com/gnames/gnweather/pkg/store"
)

// DefaultBatchSize is used when a non-positive batch size is given.
const DefaultBatchSize = 5_000

// New creates a store for a connected operator.
func New(op db.Operator, batchSize int) (store.Store, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	switch op.Driver() {
	case "postgres":
		pop, ok := op.(db.PoolOperator)
		if !ok || pop.Pool() == nil {
			return nil, NotConnectedError(op.Driver())
		}
		return &pgStore{pool: pop.Pool(), batchSize: batchSize}, nil
	case "sqlite":
		if op.DB() == nil {
			return nil, NotConnectedError(op.Driver())
		}
		return &sqliteStore{db: op.DB()}, nil
	default:
		return nil, NotConnectedError(op.Driver())
	}
}
