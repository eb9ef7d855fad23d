package ioschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCollationSQL(t *testing.T) {
	template := `ALTER TABLE %s ALTER COLUMN %s ` +
		`TYPE VARCHAR(%d) COLLATE "C"`

	tests := []struct {
		name     string
		table    string
		column   string
		varchar  int
		expected string
	}{
		{
			name:    "stations",
			table:   "weather_stations",
			column:  "id",
			varchar: 32,
			expected: `ALTER TABLE weather_stations ` +
				`ALTER COLUMN id ` +
				`TYPE VARCHAR(32) COLLATE "C"`,
		},
		{
			name:    "observations",
			table:   "weather_observations",
			column:  "station_id",
			varchar: 32,
			expected: `ALTER TABLE weather_observations ` +
				`ALTER COLUMN station_id ` +
				`TYPE VARCHAR(32) COLLATE "C"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatCollationSQL(template,
				tt.table, tt.column, tt.varchar)
			assert.Equal(t, tt.expected, result)
		})
	}
}
