package query

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/gnweather/pkg/store"
)

// ObservationParams selects a page of observations. Zero values and nil
// pointers mean "not given".
type ObservationParams struct {
	StationID string
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      int
	PageSize  *int
}

// StatsParams selects a page of yearly statistics. Zero values and nil
// pointers mean "not given".
type StatsParams struct {
	StationID string
	Year      int
	Page      int
	PageSize  *int
}

// ParseObservationParams reads station_id, date_from, date_to, page and
// page_size from URL query values.
func ParseObservationParams(v url.Values) (ObservationParams, error) {
	var res ObservationParams
	var err error

	res.StationID = v.Get("station_id")
	if res.DateFrom, err = parseDate(v, "date_from"); err != nil {
		return res, err
	}
	if res.DateTo, err = parseDate(v, "date_to"); err != nil {
		return res, err
	}
	if res.Page, err = parseInt(v, "page"); err != nil {
		return res, err
	}
	if res.PageSize, err = parseSize(v, "page_size"); err != nil {
		return res, err
	}
	return res, nil
}

// ParseStatsParams reads station_id, year, page and page_size from URL
// query values.
func ParseStatsParams(v url.Values) (StatsParams, error) {
	var res StatsParams
	var err error

	res.StationID = v.Get("station_id")
	if v.Get("year") != "" {
		if res.Year, err = parseInt(v, "year"); err != nil {
			return res, err
		}
		if err = checkYear(res.Year); err != nil {
			return res, err
		}
	}
	if res.Page, err = parseInt(v, "page"); err != nil {
		return res, err
	}
	if res.PageSize, err = parseSize(v, "page_size"); err != nil {
		return res, err
	}
	return res, nil
}

func parseInt(v url.Values, name string) (int, error) {
	s := strings.TrimSpace(v.Get(name))
	if s == "" {
		return 0, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, ValidationError(name, "must be an integer")
	}
	return i, nil
}

// parseSize keeps an explicit zero apart from a missing value.
func parseSize(v url.Values, name string) (*int, error) {
	if strings.TrimSpace(v.Get(name)) == "" {
		return nil, nil
	}
	i, err := parseInt(v, name)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func parseDate(v url.Values, name string) (*time.Time, error) {
	s := strings.TrimSpace(v.Get(name))
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(store.DateLayout, s)
	if err != nil {
		return nil, ValidationError(name, "must be a date in YYYY-MM-DD format")
	}
	return &d, nil
}
