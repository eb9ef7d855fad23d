package ioschema_test

import (
	"context"
	"testing"

	"github.com/gnames/gnweather/internal/iodb"
	"github.com/gnames/gnweather/internal/ioschema"
	"github.com/gnames/gnweather/internal/iotesting"
	"github.com/gnames/gnweather/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerNotConnected(t *testing.T) {
	mgr := ioschema.NewManager(iodb.NewSQLiteOperator())

	assert.Error(t, mgr.Create(context.Background()))
	assert.Error(t, mgr.Migrate(context.Background()))
	assert.Error(t, mgr.Analyze(context.Background()))
}

func TestManagerSQLite(t *testing.T) {
	ctx := context.Background()
	op := iotesting.ConnectSQLite(t)
	mgr := ioschema.NewManager(op)

	require.NoError(t, mgr.Create(ctx))

	for _, table := range []string{
		schema.Station{}.TableName(),
		schema.Observation{}.TableName(),
	} {
		exists, err := op.TableExists(ctx, table)
		require.NoError(t, err)
		assert.True(t, exists, table)
	}

	require.NoError(t, mgr.Analyze(ctx))

	// repeated runs are harmless
	require.NoError(t, mgr.Migrate(ctx))
	require.NoError(t, mgr.Create(ctx))

	require.NoError(t, op.DropAllTables(ctx))
	has, err := op.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, mgr.Migrate(ctx))
	has, err = op.HasTables(ctx)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestManagerPostgres(t *testing.T) {
	ctx := context.Background()
	op := iotesting.SetupPostgres(t)
	mgr := ioschema.NewManager(op)

	exists, err := op.TableExists(ctx, schema.Observation{}.TableName())
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, mgr.Migrate(ctx))
	require.NoError(t, mgr.Analyze(ctx))
}
