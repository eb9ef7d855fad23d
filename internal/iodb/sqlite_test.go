package iodb_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gnames/gnweather/internal/iodb"
	"github.com/gnames/gnweather/internal/iotesting"
	"github.com/gnames/gnweather/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteOperatorNotConnected(t *testing.T) {
	ctx := context.Background()
	op := iodb.NewSQLiteOperator()

	assert.Nil(t, op.DB())
	_, err := op.TableExists(ctx, "weather_stations")
	assert.Error(t, err)
	_, err = op.HasTables(ctx)
	assert.Error(t, err)
	assert.Error(t, op.DropAllTables(ctx))
	assert.NoError(t, op.Close())
}

func TestSQLiteOperatorConnect(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dir", "weather.db")

	op := iodb.NewSQLiteOperator()
	err := op.Connect(ctx, &config.DatabaseConfig{Path: path})
	require.NoError(t, err)
	defer op.Close()

	assert.FileExists(t, path)
	assert.NotNil(t, op.DB())
	assert.Equal(t, "sqlite", op.Driver())
}

func TestSQLiteOperatorEmptyPath(t *testing.T) {
	op := iodb.NewSQLiteOperator()
	err := op.Connect(context.Background(), &config.DatabaseConfig{})
	assert.Error(t, err)
}

func TestSQLiteOperatorTables(t *testing.T) {
	ctx := context.Background()
	op := iotesting.ConnectSQLite(t)

	has, err := op.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	_, err = op.DB().ExecContext(ctx,
		"CREATE TABLE drop_test1 (id INTEGER PRIMARY KEY)")
	require.NoError(t, err)
	_, err = op.DB().ExecContext(ctx,
		"CREATE TABLE drop_test2 (id INTEGER PRIMARY KEY)")
	require.NoError(t, err)

	exists, err := op.TableExists(ctx, "drop_test1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = op.TableExists(ctx, "nonexistent_table")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, op.DropAllTables(ctx))

	has, err = op.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, has)
}
