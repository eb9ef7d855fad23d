// Package schema provides database schema models for gnweather.
//
// Models serve two purposes. GORM tags drive AutoMigrate on PostgreSQL,
// db/ddl tags drive the DDL generator used for SQLite, which has no GORM
// dialector in our stack.
package schema

import (
	"database/sql"
	"time"
)

// StationIDMaxLen is the longest station identifier the schema accepts.
const StationIDMaxLen = 32

// DDLGenerator defines how Go models generate SQL DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the table name for this model.
	TableName() string
}

// Station is a fixed physical observation site.
type Station struct {
	// ID is the station code taken verbatim from the name of its data file.
	ID string `gorm:"primaryKey;size:32" db:"id" ddl:"VARCHAR(32) PRIMARY KEY"`

	// Name is an optional display name.
	Name sql.NullString `gorm:"size:255" db:"name" ddl:"VARCHAR(255)"`

	// Observations are removed together with their station.
	Observations []Observation `gorm:"foreignKey:StationID;constraint:OnDelete:CASCADE"`
}

// Observation keeps one calendar day of measurements for one station.
// NULL measurements were not recorded, they are not zeroes.
type Observation struct {
	// ID is a surrogate key.
	ID int64 `gorm:"primaryKey;autoIncrement" db:"id" ddl:"INTEGER PRIMARY KEY"`

	// StationID is the station the observation belongs to.
	StationID string `gorm:"size:32;not null;uniqueIndex:uq_station_date,priority:1;index:ix_obs_station_date,priority:1" db:"station_id" ddl:"VARCHAR(32) NOT NULL REFERENCES weather_stations(id) ON DELETE CASCADE"`

	// Date is the calendar day. SQLite keeps it as ISO-8601 text.
	Date time.Time `gorm:"type:date;not null;uniqueIndex:uq_station_date,priority:2;index:ix_obs_station_date,priority:2;index:ix_obs_date" db:"date" ddl:"TEXT NOT NULL"`

	// TmaxC is the maximum temperature in degrees Celsius.
	TmaxC sql.NullFloat64 `gorm:"column:tmax_c;type:double precision" db:"tmax_c" ddl:"REAL"`

	// TminC is the minimum temperature in degrees Celsius.
	TminC sql.NullFloat64 `gorm:"column:tmin_c;type:double precision" db:"tmin_c" ddl:"REAL"`

	// PrcpMM is the precipitation in millimeters.
	PrcpMM sql.NullFloat64 `gorm:"column:prcp_mm;type:double precision" db:"prcp_mm" ddl:"REAL"`
}
