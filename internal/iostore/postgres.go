package iostore

import (
	"context"
	"errors"
	"strings"

	"github.com/gnames/gnweather/pkg/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// writeLockKey identifies the advisory lock held by write transactions.
const writeLockKey int64 = 0x676e77

type pgStore struct {
	pool      *pgxpool.Pool
	batchSize int
}

// pgTx queues statements and sends them in batches.
type pgTx struct {
	tx        pgx.Tx
	batch     *pgx.Batch
	batchSize int
}

// Update runs fn inside one transaction. The transaction holds an
// advisory lock, so concurrent writers from other processes serialize.
func (s *pgStore) Update(
	ctx context.Context,
	fn func(store.Tx) error,
) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return TransactionError(err)
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	if _, err = tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", writeLockKey); err != nil {
		return TransactionError(err)
	}

	pTx := &pgTx{tx: tx, batch: &pgx.Batch{}, batchSize: s.batchSize}
	if err = fn(pTx); err != nil {
		return err
	}

	if err = pTx.flush(ctx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return pgWriteError(err)
	}
	return nil
}

func (t *pgTx) EnsureStation(ctx context.Context, id string) error {
	t.batch.Queue(pgDialect.stationSQL(), id)
	return t.flushFull(ctx)
}

func (t *pgTx) UpsertObservation(
	ctx context.Context,
	obs store.Observation,
) error {
	t.batch.Queue(pgDialect.upsertSQL(), pgDialect.upsertArgs(obs)...)
	return t.flushFull(ctx)
}

func (t *pgTx) flushFull(ctx context.Context) error {
	if t.batch.Len() < t.batchSize {
		return nil
	}
	return t.flush(ctx)
}

// flush sends queued statements and checks every result.
func (t *pgTx) flush(ctx context.Context) error {
	n := t.batch.Len()
	if n == 0 {
		return nil
	}

	br := t.tx.SendBatch(ctx, t.batch)
	t.batch = &pgx.Batch{}

	for range n {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return pgWriteError(err)
		}
	}

	if err := br.Close(); err != nil {
		return pgWriteError(err)
	}
	return nil
}

func (s *pgStore) QueryObservations(
	ctx context.Context,
	f store.ObservationFilter,
	w store.Window,
) (int, []store.Observation, error) {
	countQ, listQ := pgDialect.observationsQueries(f, w)

	total, err := s.count(ctx, countQ)
	if err != nil || total == 0 {
		return total, nil, err
	}

	rows, err := s.pool.Query(ctx, listQ.sql, listQ.args...)
	if err != nil {
		return 0, nil, QueryError(err)
	}
	defer rows.Close()

	var res []store.Observation
	for rows.Next() {
		var obs store.Observation
		err = rows.Scan(
			&obs.StationID, &obs.Date,
			&obs.TmaxC, &obs.TminC, &obs.PrcpMM,
		)
		if err != nil {
			return 0, nil, QueryError(err)
		}
		res = append(res, obs)
	}
	if err = rows.Err(); err != nil {
		return 0, nil, QueryError(err)
	}

	return total, res, nil
}

func (s *pgStore) QueryYearlyStats(
	ctx context.Context,
	f store.StatsFilter,
	w store.Window,
) (int, []store.YearlyStats, error) {
	countQ, listQ := pgDialect.statsQueries(f, w)

	total, err := s.count(ctx, countQ)
	if err != nil || total == 0 {
		return total, nil, err
	}

	rows, err := s.pool.Query(ctx, listQ.sql, listQ.args...)
	if err != nil {
		return 0, nil, QueryError(err)
	}
	defer rows.Close()

	var res []store.YearlyStats
	for rows.Next() {
		var ys store.YearlyStats
		err = rows.Scan(
			&ys.StationID, &ys.Year,
			&ys.AvgTmaxC, &ys.AvgTminC, &ys.TotalPrcpMM,
		)
		if err != nil {
			return 0, nil, QueryError(err)
		}
		res = append(res, ys)
	}
	if err = rows.Err(); err != nil {
		return 0, nil, QueryError(err)
	}

	return total, res, nil
}

func (s *pgStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return QueryError(err)
	}
	return nil
}

func (s *pgStore) count(ctx context.Context, q sqlQuery) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, q.sql, q.args...).Scan(&n); err != nil {
		return 0, QueryError(err)
	}
	return n, nil
}

// pgWriteError maps SQLSTATE class 23 (integrity constraint violation)
// to IntegrityError.
func pgWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return IntegrityError(err)
	}
	return WriteError(err)
}
