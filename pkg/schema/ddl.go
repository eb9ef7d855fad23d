package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model any, tableName string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

// AllDDL returns statements that create the whole schema from scratch.
// The statements are idempotent.
func AllDDL() []string {
	var res []string
	for _, m := range []DDLGenerator{Station{}, Observation{}} {
		res = append(res, m.TableDDL())
		res = append(res, m.IndexDDL()...)
	}
	return res
}

// Station DDL methods
func (s Station) TableDDL() string {
	return generateDDL(s, s.TableName())
}

func (s Station) IndexDDL() []string {
	return []string{}
}

func (s Station) TableName() string {
	return "weather_stations"
}

// Observation DDL methods
func (o Observation) TableDDL() string {
	return generateDDL(o, o.TableName())
}

func (o Observation) IndexDDL() []string {
	return []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_station_date ON weather_observations(station_id, date);",
		"CREATE INDEX IF NOT EXISTS ix_obs_station_date ON weather_observations(station_id, date);",
		"CREATE INDEX IF NOT EXISTS ix_obs_date ON weather_observations(date);",
	}
}

func (o Observation) TableName() string {
	return "weather_observations"
}
