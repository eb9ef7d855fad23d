package record_test

import (
	"errors"
	"testing"
	"time"

	"github.com/gnames/gnweather/pkg/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 {
	return &f
}

func TestParse(t *testing.T) {
	tests := []struct {
		msg  string
		line string
		date time.Time
		tmax *float64
		tmin *float64
		prcp *float64
	}{
		{
			msg:  "all values present",
			line: "20200101\t250\t100\t12\n",
			date: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			tmax: ptr(25.0),
			tmin: ptr(10.0),
			prcp: ptr(1.2),
		},
		{
			msg:  "missing tmax",
			line: "20200102\t-9999\t50\t0",
			date: time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC),
			tmin: ptr(5.0),
			prcp: ptr(0.0),
		},
		{
			msg:  "all missing",
			line: "19850630\t-9999\t-9999\t-9999",
			date: time.Date(1985, 6, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			msg:  "negative temperatures",
			line: "19900115\t-22\t-156\t3",
			date: time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC),
			tmax: ptr(-2.2),
			tmin: ptr(-15.6),
			prcp: ptr(0.3),
		},
		{
			msg:  "windows line ending",
			line: "20000229\t1\t-1\t9999\r\n",
			date: time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC),
			tmax: ptr(0.1),
			tmin: ptr(-0.1),
			prcp: ptr(999.9),
		},
	}

	for _, v := range tests {
		res, err := record.Parse(v.line)
		require.NoError(t, err, v.msg)
		assert.True(t, v.date.Equal(res.Date), v.msg)
		assert.Equal(t, v.tmax, res.TmaxC, v.msg)
		assert.Equal(t, v.tmin, res.TminC, v.msg)
		assert.Equal(t, v.prcp, res.PrcpMM, v.msg)
	}
}

func TestParseMissingNeverScaled(t *testing.T) {
	res, err := record.Parse("20200101\t-9999\t-9999\t-9999")
	require.NoError(t, err)
	for _, v := range []*float64{res.TmaxC, res.TminC, res.PrcpMM} {
		assert.Nil(t, v)
	}

	// -9998 is an ordinary value
	res, err = record.Parse("20200101\t-9998\t0\t0")
	require.NoError(t, err)
	require.NotNil(t, res.TmaxC)
	assert.Equal(t, float64(-9998)/10.0, *res.TmaxC)
}

func TestParseFormatError(t *testing.T) {
	tests := []struct {
		msg    string
		line   string
		reason string
	}{
		{"three fields", "20200101\t250\t100", "expected 4"},
		{"five fields", "20200101\t250\t100\t1\t2", "expected 4"},
		{"space separated", "20200101 250 100 12", "expected 4"},
		{"bad date", "2020-01-01\t250\t100\t12", "YYYYMMDD"},
		{"short date", "2020011\t250\t100\t12", "YYYYMMDD"},
		{"impossible date", "20210229\t250\t100\t12", "calendar date"},
		{"float tmax", "20200101\t25.0\t100\t12", "TMAX"},
		{"text tmin", "20200101\t250\tNA\t12", "TMIN"},
		{"empty prcp", "20200101\t250\t100\t\t", "expected 4"},
	}

	for _, v := range tests {
		_, err := record.Parse(v.line)
		require.Error(t, err, v.msg)

		var fe *record.FormatError
		require.True(t, errors.As(err, &fe), v.msg)
		assert.Equal(t, v.line, fe.Line, v.msg)
		assert.Contains(t, fe.Reason, v.reason, v.msg)
		assert.Contains(t, err.Error(), v.line[:6], v.msg)
	}
}

func TestParseBlank(t *testing.T) {
	for _, line := range []string{"", "\n", "  \t \r\n"} {
		assert.True(t, record.IsBlank(line))
		_, err := record.Parse(line)
		assert.ErrorIs(t, err, record.ErrBlankLine)
	}
	assert.False(t, record.IsBlank("20200101\t1\t1\t1"))
}
