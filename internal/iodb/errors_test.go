package iodb

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnweather/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionError(t *testing.T) {
	cause := errors.New("connection refused")

	err := ConnectionError("localhost", 5432, "gnweather", "postgres", cause)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.DBConnectionError, gnErr.Code)
	assert.Len(t, gnErr.Vars, 8)
	assert.Equal(t, "localhost", gnErr.Vars[0])
	assert.Equal(t, 5432, gnErr.Vars[1])
	assert.ErrorIs(t, gnErr.Err, cause)
}

func TestEmptyDatabaseError(t *testing.T) {
	err := EmptyDatabaseError("gnweather")

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBEmptyDatabaseError, gnErr.Code)
	assert.Equal(t, []any{"gnweather"}, gnErr.Vars)
	assert.Contains(t, gnErr.Err.Error(), "gnweather create")
}

func TestErrorsWrapCause(t *testing.T) {
	cause := errors.New("root cause")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
	}{
		{"sqlite open", SQLiteOpenError("/tmp/x.db", cause), errcode.DBConnectionError},
		{"table check", TableCheckError(cause), errcode.DBTableCheckError},
		{"table exists", TableExistsCheckError("t", cause), errcode.DBTableExistsCheckError},
		{"query tables", QueryTablesError(cause), errcode.DBQueryTablesError},
		{"scan table", ScanTableError(cause), errcode.DBScanTableError},
		{"drop table", DropTableError("t", cause), errcode.DBDropTableError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, tt.code, gnErr.Code)
			assert.NotEmpty(t, gnErr.Msg)
			assert.ErrorIs(t, gnErr.Err, cause)
		})
	}
}

func TestNew(t *testing.T) {
	op, err := New(DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, op.Driver())

	op, err = New(DriverPostgres)
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, op.Driver())

	_, err = New("mysql")
	require.Error(t, err)
	gnErr := err.(*gn.Error)
	assert.Equal(t, errcode.DBUnknownDriverError, gnErr.Code)
	assert.Equal(t, []any{"mysql"}, gnErr.Vars)
}
