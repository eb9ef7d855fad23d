// Package store defines the persistence contract for stations and their
// daily observations.
//
// Implementations guarantee at most one observation per (station, date)
// and replace all measurements of an existing observation on upsert.
package store

import (
	"context"
	"time"

	"github.com/gnames/gnweather/pkg/record"
)

// DateLayout is the ISO-8601 calendar date layout.
const DateLayout = "2006-01-02"

// Store is a durable storage of stations and observations.
type Store interface {
	// Update runs fn inside one write transaction. The transaction
	// commits when fn returns nil and rolls back otherwise, so no partial
	// state becomes visible to readers.
	Update(ctx context.Context, fn func(Tx) error) error

	// QueryObservations returns the number of observations matching the
	// filter and one window of them ordered by station and date.
	QueryObservations(
		ctx context.Context,
		f ObservationFilter,
		w Window,
	) (int, []Observation, error)

	// QueryYearlyStats returns the number of (station, year) groups
	// matching the filter and one window of their aggregates ordered by
	// station and year.
	QueryYearlyStats(
		ctx context.Context,
		f StatsFilter,
		w Window,
	) (int, []YearlyStats, error)

	// Ping verifies that the storage is reachable.
	Ping(ctx context.Context) error
}

// Tx is the write side of a Store, valid only inside Update.
type Tx interface {
	// EnsureStation creates a station if it does not exist yet.
	EnsureStation(ctx context.Context, id string) error

	// UpsertObservation inserts an observation or overwrites all
	// measurements of the existing one for the same station and date.
	UpsertObservation(ctx context.Context, obs Observation) error
}

// Observation is one day of measurements of one station.
// Nil measurements are absent.
type Observation struct {
	StationID string
	Date      time.Time
	TmaxC     *float64
	TminC     *float64
	PrcpMM    *float64
}

// NewObservation attaches a parsed record to a station.
func NewObservation(stationID string, rec record.Record) Observation {
	return Observation{
		StationID: stationID,
		Date:      rec.Date,
		TmaxC:     rec.TmaxC,
		TminC:     rec.TminC,
		PrcpMM:    rec.PrcpMM,
	}
}

// YearlyStats aggregates observations of one station over a calendar year.
// Aggregates ignore absent values; a column without any present value
// has an absent aggregate.
type YearlyStats struct {
	StationID   string
	Year        int
	AvgTmaxC    *float64
	AvgTminC    *float64
	TotalPrcpMM *float64
}

// ObservationFilter selects observations. Zero fields do not filter.
type ObservationFilter struct {
	// StationID matches the station exactly (case-sensitive).
	StationID string

	// DateFrom is the inclusive lower bound of the date.
	DateFrom *time.Time

	// DateTo is the inclusive upper bound of the date.
	DateTo *time.Time
}

// StatsFilter selects groups of yearly statistics. Zero fields do not filter.
type StatsFilter struct {
	// StationID matches the station exactly (case-sensitive).
	StationID string

	// Year selects one calendar year.
	Year int
}

// Window is a slice of an ordered result set.
type Window struct {
	Limit  int
	Offset int
}

// YearRange returns the half-open date range [from, to) of a year.
func YearRange(year int) (from, to time.Time) {
	from = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to = from.AddDate(1, 0, 0)
	return from, to
}
