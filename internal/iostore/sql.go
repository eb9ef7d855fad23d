package iostore

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/gnweather/pkg/store"
)

const (
	stationSQL = `INSERT INTO weather_stations (id) VALUES (%s)
ON CONFLICT (id) DO NOTHING`

	upsertSQL = `INSERT INTO weather_observations
  (station_id, date, tmax_c, tmin_c, prcp_mm)
VALUES (%s, %s, %s, %s, %s)
ON CONFLICT (station_id, date) DO UPDATE SET
  tmax_c = excluded.tmax_c,
  tmin_c = excluded.tmin_c,
  prcp_mm = excluded.prcp_mm`
)

// dialect keeps the differences between SQL backends.
type dialect struct {
	placeholder func(n int) string
	yearExpr    string
	dateArg     func(time.Time) any
}

var pgDialect = dialect{
	placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
	yearExpr:    "EXTRACT(YEAR FROM date)::int",
	dateArg:     func(t time.Time) any { return t },
}

var sqliteDialect = dialect{
	placeholder: func(int) string { return "?" },
	yearExpr:    "CAST(strftime('%Y', date) AS INTEGER)",
	dateArg:     func(t time.Time) any { return t.Format(store.DateLayout) },
}

func (d dialect) stationSQL() string {
	return fmt.Sprintf(stationSQL, d.placeholder(1))
}

func (d dialect) upsertSQL() string {
	return fmt.Sprintf(upsertSQL,
		d.placeholder(1), d.placeholder(2), d.placeholder(3),
		d.placeholder(4), d.placeholder(5),
	)
}

func (d dialect) upsertArgs(obs store.Observation) []any {
	return []any{
		obs.StationID, d.dateArg(obs.Date),
		obs.TmaxC, obs.TminC, obs.PrcpMM,
	}
}

// where accumulates filter conditions and their arguments.
type where struct {
	d     dialect
	conds []string
	args  []any
}

// add appends a condition; cond contains one %s for the placeholder.
func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, w.d.placeholder(len(w.args))))
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// window appends LIMIT and OFFSET to a query built on w.
func (w *where) window(q string, win store.Window) (string, []any) {
	args := append(append([]any{}, w.args...), win.Limit, win.Offset)
	n := len(w.args)
	q += fmt.Sprintf(" LIMIT %s OFFSET %s",
		w.d.placeholder(n+1), w.d.placeholder(n+2))
	return q, args
}

// sqlQuery is a statement with its arguments.
type sqlQuery struct {
	sql  string
	args []any
}

func (d dialect) observationsQueries(
	f store.ObservationFilter,
	win store.Window,
) (count, list sqlQuery) {
	w := &where{d: d}
	if f.StationID != "" {
		w.add("station_id = %s", f.StationID)
	}
	if f.DateFrom != nil {
		w.add("date >= %s", d.dateArg(*f.DateFrom))
	}
	if f.DateTo != nil {
		w.add("date <= %s", d.dateArg(*f.DateTo))
	}

	count = sqlQuery{
		sql:  "SELECT COUNT(*) FROM weather_observations" + w.String(),
		args: w.args,
	}

	q := `SELECT station_id, date, tmax_c, tmin_c, prcp_mm
FROM weather_observations` + w.String() + `
ORDER BY station_id, date`
	list.sql, list.args = w.window(q, win)

	return count, list
}

func (d dialect) statsQueries(
	f store.StatsFilter,
	win store.Window,
) (count, list sqlQuery) {
	w := &where{d: d}
	if f.StationID != "" {
		w.add("station_id = %s", f.StationID)
	}
	if f.Year != 0 {
		from, to := store.YearRange(f.Year)
		w.add("date >= %s", d.dateArg(from))
		w.add("date < %s", d.dateArg(to))
	}

	group := " GROUP BY station_id, " + d.yearExpr

	count = sqlQuery{
		sql: "SELECT COUNT(*) FROM (SELECT 1 FROM weather_observations" +
			w.String() + group + ") AS g",
		args: w.args,
	}

	q := "SELECT station_id, " + d.yearExpr + ` AS year,
  AVG(tmax_c), AVG(tmin_c), SUM(prcp_mm)
FROM weather_observations` + w.String() + group + `
ORDER BY station_id, year`
	list.sql, list.args = w.window(q, win)

	return count, list
}
