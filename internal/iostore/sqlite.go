package iostore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gnames/gnweather/pkg/store"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type sqliteStore struct {
	db *sql.DB
}

// sqliteTx holds statements prepared for one write transaction.
type sqliteTx struct {
	station *sql.Stmt
	upsert  *sql.Stmt
}

// Update runs fn inside a write transaction. The connection DSN makes
// BEGIN take the write lock immediately, so concurrent writers queue.
func (s *sqliteStore) Update(
	ctx context.Context,
	fn func(store.Tx) error,
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TransactionError(err)
	}
	defer func() { _ = tx.Rollback() }()

	stTx := &sqliteTx{}
	if stTx.station, err = tx.PrepareContext(ctx, sqliteDialect.stationSQL()); err != nil {
		return TransactionError(err)
	}
	defer stTx.station.Close()

	if stTx.upsert, err = tx.PrepareContext(ctx, sqliteDialect.upsertSQL()); err != nil {
		return TransactionError(err)
	}
	defer stTx.upsert.Close()

	if err = fn(stTx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return sqliteWriteError(err)
	}
	return nil
}

func (t *sqliteTx) EnsureStation(ctx context.Context, id string) error {
	if _, err := t.station.ExecContext(ctx, id); err != nil {
		return sqliteWriteError(err)
	}
	return nil
}

func (t *sqliteTx) UpsertObservation(
	ctx context.Context,
	obs store.Observation,
) error {
	args := sqliteDialect.upsertArgs(obs)
	if _, err := t.upsert.ExecContext(ctx, args...); err != nil {
		return sqliteWriteError(err)
	}
	return nil
}

func (s *sqliteStore) QueryObservations(
	ctx context.Context,
	f store.ObservationFilter,
	w store.Window,
) (int, []store.Observation, error) {
	countQ, listQ := sqliteDialect.observationsQueries(f, w)

	total, err := s.count(ctx, countQ)
	if err != nil || total == 0 {
		return total, nil, err
	}

	rows, err := s.db.QueryContext(ctx, listQ.sql, listQ.args...)
	if err != nil {
		return 0, nil, QueryError(err)
	}
	defer rows.Close()

	var res []store.Observation
	for rows.Next() {
		var date string
		var tmax, tmin, prcp sql.NullFloat64
		var obs store.Observation
		err = rows.Scan(&obs.StationID, &date, &tmax, &tmin, &prcp)
		if err != nil {
			return 0, nil, QueryError(err)
		}
		if obs.Date, err = time.Parse(store.DateLayout, date); err != nil {
			return 0, nil, QueryError(err)
		}
		obs.TmaxC = floatPtr(tmax)
		obs.TminC = floatPtr(tmin)
		obs.PrcpMM = floatPtr(prcp)
		res = append(res, obs)
	}
	if err = rows.Err(); err != nil {
		return 0, nil, QueryError(err)
	}

	return total, res, nil
}

func (s *sqliteStore) QueryYearlyStats(
	ctx context.Context,
	f store.StatsFilter,
	w store.Window,
) (int, []store.YearlyStats, error) {
	countQ, listQ := sqliteDialect.statsQueries(f, w)

	total, err := s.count(ctx, countQ)
	if err != nil || total == 0 {
		return total, nil, err
	}

	rows, err := s.db.QueryContext(ctx, listQ.sql, listQ.args...)
	if err != nil {
		return 0, nil, QueryError(err)
	}
	defer rows.Close()

	var res []store.YearlyStats
	for rows.Next() {
		var tmax, tmin, prcp sql.NullFloat64
		var ys store.YearlyStats
		err = rows.Scan(&ys.StationID, &ys.Year, &tmax, &tmin, &prcp)
		if err != nil {
			return 0, nil, QueryError(err)
		}
		ys.AvgTmaxC = floatPtr(tmax)
		ys.AvgTminC = floatPtr(tmin)
		ys.TotalPrcpMM = floatPtr(prcp)
		res = append(res, ys)
	}
	if err = rows.Err(); err != nil {
		return 0, nil, QueryError(err)
	}

	return total, res, nil
}

func (s *sqliteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return QueryError(err)
	}
	return nil
}

func (s *sqliteStore) count(ctx context.Context, q sqlQuery) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, q.sql, q.args...).Scan(&n); err != nil {
		return 0, QueryError(err)
	}
	return n, nil
}

// sqliteWriteError separates constraint violations from other
// write failures.
func sqliteWriteError(err error) error {
	var sErr *sqlite.Error
	if errors.As(err, &sErr) && sErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return IntegrityError(err)
	}
	return WriteError(err)
}

func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
