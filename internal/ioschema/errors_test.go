package ioschema

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnweather/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotConnectedError(t *testing.T) {
	err := NotConnectedError()

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
}

func TestErrorsWrapCause(t *testing.T) {
	cause := errors.New("root cause")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
	}{
		{"gorm", GORMConnectionError(cause), errcode.SchemaGORMConnectionError},
		{"create", CreateSchemaError(cause), errcode.SchemaCreateError},
		{"migrate", MigrateSchemaError(cause), errcode.SchemaMigrateError},
		{"collation", CollationError("t", "c", cause), errcode.SchemaCollationError},
		{"analyze", AnalyzeError(cause), errcode.SchemaAnalyzeError},
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

func TestCollationErrorVars(t *testing.T) {
	err := CollationError("weather_stations", "id", errors.New("x"))

	gnErr := err.(*gn.Error)
	assert.Equal(t, []any{"weather_stations", "id"}, gnErr.Vars)
}
