// Package record parses raw daily station observations.
//
// A raw observation is one line of text with four tab-separated fields:
//
//	YYYYMMDD<TAB>TMAX<TAB>TMIN<TAB>PRCP
//
// Temperatures are integers in tenths of a degree Celsius, precipitation
// is an integer in tenths of a millimeter. The value -9999 marks a missing
// measurement.
//
// The package is pure: it does not touch the file system or a database.
package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// Missing is the sentinel for an unrecorded measurement.
	Missing = -9999

	// DateLayout is the layout of the date field.
	DateLayout = "20060102"

	fieldsNum = 4
)

// ErrBlankLine is returned by Parse for empty or whitespace-only lines.
// Callers are expected to skip such lines without counting them.
var ErrBlankLine = errors.New("blank line")

// Record is one day of measurements for one station. A nil measurement is
// absent, which is different from zero.
type Record struct {
	// Date is the calendar day of the observation (UTC midnight).
	Date time.Time

	// TmaxC is the maximum temperature in degrees Celsius.
	TmaxC *float64

	// TminC is the minimum temperature in degrees Celsius.
	TminC *float64

	// PrcpMM is the precipitation in millimeters.
	PrcpMM *float64
}

// FormatError describes a line that cannot be converted to a Record.
type FormatError struct {
	// Line is the offending line content without the line terminator.
	Line string

	// Reason explains what is wrong with the line.
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed record %q: %s", e.Line, e.Reason)
}

// IsBlank reports whether a line carries no data.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// Parse converts a raw observation line into a Record.
func Parse(line string) (Record, error) {
	var res Record
	if IsBlank(line) {
		return res, ErrBlankLine
	}

	raw := strings.TrimRight(line, "\r\n")
	fields := strings.Split(strings.TrimSpace(line), "\t")
	if len(fields) != fieldsNum {
		return res, &FormatError{
			Line: raw,
			Reason: fmt.Sprintf(
				"expected %d tab-separated fields, got %d",
				fieldsNum, len(fields),
			),
		}
	}

	date, err := parseDate(fields[0])
	if err != nil {
		return res, &FormatError{Line: raw, Reason: err.Error()}
	}
	res.Date = date

	dest := []**float64{&res.TmaxC, &res.TminC, &res.PrcpMM}
	names := []string{"TMAX", "TMIN", "PRCP"}
	for i, field := range fields[1:] {
		v, err := parseTenths(field)
		if err != nil {
			return Record{}, &FormatError{
				Line:   raw,
				Reason: fmt.Sprintf("%s: %s", names[i], err),
			}
		}
		*dest[i] = v
	}

	return res, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) != len(DateLayout) {
		return time.Time{}, fmt.Errorf("date %q is not in YYYYMMDD format", s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return time.Time{}, fmt.Errorf("date %q is not in YYYYMMDD format", s)
		}
	}
	res, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q is not a calendar date", s)
	}
	return res, nil
}

// parseTenths converts an integer in tenths of a unit to the unit.
// The Missing sentinel becomes nil.
func parseTenths(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%q is not an integer", s)
	}
	if v == Missing {
		return nil, nil
	}
	res := float64(v) / 10.0
	return &res, nil
}
