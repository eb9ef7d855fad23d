package cmd

import (
	"context"
	"testing"

	"github.com/gnames/gnweather/internal/iotesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetServeCmd_Flags(t *testing.T) {
	cmd := getServeCmd()
	assert.Equal(t, "serve", cmd.Use)
	assert.Contains(t, cmd.Long, "/api/weather/stats")

	port := cmd.Flags().Lookup("port")
	require.NotNil(t, port)
	assert.Equal(t, "p", port.Shorthand)
	assert.Equal(t, "0", port.DefValue)
}

func TestEnsureSchema(t *testing.T) {
	ctx := context.Background()
	dbCfg := iotesting.SQLiteConfig(t).Database
	op := iotesting.ConnectSQLite(t)

	hasTables, err := op.HasTables(ctx)
	require.NoError(t, err)
	require.False(t, hasTables)

	for range 2 {
		require.NoError(t, ensureSchema(ctx, op, &dbCfg))
		hasTables, err = op.HasTables(ctx)
		require.NoError(t, err)
		assert.True(t, hasTables)
	}
}

func TestAppMetrics(t *testing.T) {
	assert.Same(t, appMetrics(), appMetrics())
}
