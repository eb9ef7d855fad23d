// Package query filters, paginates and aggregates stored observations.
// It is read-only and does not depend on a particular storage backend.
package query

import (
	"context"
	"math"

	"github.com/gnames/gnweather/pkg/store"
)

const (
	// DefaultPage is the page returned when none is requested.
	DefaultPage = 1
	// DefaultPageSize is the page size used when none is requested.
	DefaultPageSize = 100
	// MaxPageSize is the largest page size served; bigger requests
	// are clamped to it.
	MaxPageSize = 1000
)

// Page is one window of an ordered result set.
type Page[T any] struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
	Items    []T `json:"items"`
}

// ObservationItem is one observation as served to clients.
type ObservationItem struct {
	StationID string   `json:"station_id"`
	Date      string   `json:"date"`
	TmaxC     *float64 `json:"tmax_c"`
	TminC     *float64 `json:"tmin_c"`
	PrcpMM    *float64 `json:"prcp_mm"`
}

// YearlyStatsItem is the yearly aggregate of one station.
type YearlyStatsItem struct {
	StationID   string   `json:"station_id"`
	Year        int      `json:"year"`
	AvgTmaxC    *float64 `json:"avg_tmax_c"`
	AvgTminC    *float64 `json:"avg_tmin_c"`
	TotalPrcpMM *float64 `json:"total_prcp_mm"`
}

// Engine answers observation and statistics queries.
type Engine struct {
	st store.Store
}

// New creates a query engine on top of a store.
func New(st store.Store) *Engine {
	return &Engine{st: st}
}

// ListObservations returns one page of observations ordered by station
// and date. An empty result, such as the one of a date_from later than
// date_to, is a page with zero total.
func (e *Engine) ListObservations(
	ctx context.Context,
	p ObservationParams,
) (Page[ObservationItem], error) {
	var res Page[ObservationItem]

	win, page, size, err := window(p.Page, p.PageSize)
	if err != nil {
		return res, err
	}

	f := store.ObservationFilter{
		StationID: p.StationID,
		DateFrom:  p.DateFrom,
		DateTo:    p.DateTo,
	}
	total, obs, err := e.st.QueryObservations(ctx, f, win)
	if err != nil {
		return res, err
	}

	res = Page[ObservationItem]{
		Page:     page,
		PageSize: size,
		Total:    total,
		Items:    make([]ObservationItem, 0, len(obs)),
	}
	for _, o := range obs {
		res.Items = append(res.Items, ObservationItem{
			StationID: o.StationID,
			Date:      o.Date.Format(store.DateLayout),
			TmaxC:     o.TmaxC,
			TminC:     o.TminC,
			PrcpMM:    o.PrcpMM,
		})
	}
	return res, nil
}

// YearlyStats returns one page of per-station yearly aggregates ordered
// by station and year.
func (e *Engine) YearlyStats(
	ctx context.Context,
	p StatsParams,
) (Page[YearlyStatsItem], error) {
	var res Page[YearlyStatsItem]

	win, page, size, err := window(p.Page, p.PageSize)
	if err != nil {
		return res, err
	}
	if p.Year != 0 {
		if err = checkYear(p.Year); err != nil {
			return res, err
		}
	}

	f := store.StatsFilter{StationID: p.StationID, Year: p.Year}
	total, stats, err := e.st.QueryYearlyStats(ctx, f, win)
	if err != nil {
		return res, err
	}

	res = Page[YearlyStatsItem]{
		Page:     page,
		PageSize: size,
		Total:    total,
		Items:    make([]YearlyStatsItem, 0, len(stats)),
	}
	for _, s := range stats {
		res.Items = append(res.Items, YearlyStatsItem{
			StationID:   s.StationID,
			Year:        s.Year,
			AvgTmaxC:    s.AvgTmaxC,
			AvgTminC:    s.AvgTminC,
			TotalPrcpMM: s.TotalPrcpMM,
		})
	}
	return res, nil
}

// window applies defaults and limits to the requested page and page
// size and converts them to a store window. A missing size gives the
// default, an explicit one is clamped to [1, MaxPageSize].
func window(page int, size *int) (store.Window, int, int, error) {
	var win store.Window
	if page < 0 {
		return win, 0, 0, ValidationError("page", "must not be negative")
	}
	page = max(page, DefaultPage)

	sz := DefaultPageSize
	if size != nil {
		sz = min(max(*size, 1), MaxPageSize)
	}

	if page-1 > math.MaxInt/sz {
		return win, 0, 0, ValidationError("page", "is too large")
	}

	win = store.Window{Limit: sz, Offset: (page - 1) * sz}
	return win, page, sz, nil
}

func checkYear(year int) error {
	if year < 1 || year > 9999 {
		return ValidationError("year", "must be between 1 and 9999")
	}
	return nil
}
