package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Projections are pure functions over a Result's columns: no side effects,
// no network access, identical input gives identical output.

const (
	// completenessBaseline is the fixed per-chart reference count the
	// completeness view measures "filled" against. It is a display
	// simplification carried over from the original dashboard, not the
	// dataset's row count.
	completenessBaseline = 100

	maxChartColumns   = 10
	maxNumericColumns = 8

	// Unavailable is rendered for numeric aggregates the service omitted.
	Unavailable = "n/a"
)

// CompletenessPoint is one bar pair of the completeness chart.
type CompletenessPoint struct {
	Column  string `json:"column"`
	Filled  int    `json:"filled"`
	Missing int    `json:"missing"`
}

// Completeness derives the filled/missing series for the first ten columns.
func Completeness(columns []ColumnStat) []CompletenessPoint {
	n := len(columns)
	if n > maxChartColumns {
		n = maxChartColumns
	}
	points := make([]CompletenessPoint, 0, n)
	for _, c := range columns[:n] {
		filled := completenessBaseline - c.Missing
		if filled < 0 {
			filled = 0
		}
		points = append(points, CompletenessPoint{
			Column:  c.Column,
			Filled:  filled,
			Missing: c.Missing,
		})
	}
	return points
}

// KindCount is one slice of the type distribution chart.
type KindCount struct {
	Kind  ColumnKind `json:"kind"`
	Count int        `json:"count"`
}

// TypeDistribution groups all columns by kind. Unknown kinds count as
// KindOther. Output order is fixed (numeric, text, other) so repeated calls
// on the same input are byte-identical; kinds with no columns are omitted.
func TypeDistribution(columns []ColumnStat) []KindCount {
	counts := map[ColumnKind]int{}
	for _, c := range columns {
		counts[c.Kind.Normalize()]++
	}
	out := make([]KindCount, 0, len(counts))
	for _, k := range []ColumnKind{KindNumeric, KindText, KindOther} {
		if counts[k] > 0 {
			out = append(out, KindCount{Kind: k, Count: counts[k]})
		}
	}
	return out
}

// NumericStat is one row of the numeric statistics view.
type NumericStat struct {
	Column string  `json:"column"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// NumericStats derives mean/min/max for the first eight numeric columns,
// rounded to two decimal places. Absent aggregates default to zero. The
// result is empty when the dataset has no numeric columns.
func NumericStats(columns []ColumnStat) []NumericStat {
	out := make([]NumericStat, 0, maxNumericColumns)
	for _, c := range columns {
		if c.Kind.Normalize() != KindNumeric {
			continue
		}
		out = append(out, NumericStat{
			Column: c.Column,
			Mean:   round2(deref(c.Mean)),
			Min:    round2(deref(c.Min)),
			Max:    round2(deref(c.Max)),
		})
		if len(out) == maxNumericColumns {
			break
		}
	}
	return out
}

// UniquenessPoint is one bar of the distinct-values chart.
type UniquenessPoint struct {
	Column string `json:"column"`
	Count  int    `json:"count"`
}

// Uniqueness derives the recorded-top-value counts for the first ten columns.
func Uniqueness(columns []ColumnStat) []UniquenessPoint {
	n := len(columns)
	if n > maxChartColumns {
		n = maxChartColumns
	}
	points := make([]UniquenessPoint, 0, n)
	for _, c := range columns[:n] {
		points = append(points, UniquenessPoint{
			Column: c.Column,
			Count:  len(c.TopValues),
		})
	}
	return points
}

// TableRow is one display row of the column summary table. Numeric
// aggregates are pre-rendered strings so absent values show a sentinel
// instead of a zero that looks like data.
type TableRow struct {
	Column  string     `json:"column"`
	Dtype   string     `json:"dtype"`
	Kind    ColumnKind `json:"kind"`
	Missing int        `json:"missing"`
	Mean    string     `json:"mean"`
	Min     string     `json:"min"`
	Max     string     `json:"max"`
}

// ColumnTable derives the full column summary table, optionally filtered by
// a case-insensitive substring match on the column name. No truncation.
func ColumnTable(columns []ColumnStat, filter string) []TableRow {
	needle := strings.ToLower(strings.TrimSpace(filter))
	rows := make([]TableRow, 0, len(columns))
	for _, c := range columns {
		if needle != "" && !strings.Contains(strings.ToLower(c.Column), needle) {
			continue
		}
		rows = append(rows, TableRow{
			Column:  c.Column,
			Dtype:   c.Dtype,
			Kind:    c.Kind.Normalize(),
			Missing: c.Missing,
			Mean:    renderFloat(c.Mean),
			Min:     renderFloat(c.Min),
			Max:     renderFloat(c.Max),
		})
	}
	return rows
}

// PreviewTable is the stringified preview grid.
type PreviewTable struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Preview derives the preview grid. Column order follows the first row's
// field order; cells are stringified and absent fields render as "".
func Preview(rows []PreviewRow) PreviewTable {
	if len(rows) == 0 {
		return PreviewTable{Columns: []string{}, Rows: [][]string{}}
	}

	columns := make([]string, 0, len(rows[0].Fields))
	for _, f := range rows[0].Fields {
		columns = append(columns, f.Name)
	}

	grid := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(columns))
		for _, name := range columns {
			value, ok := row.Get(name)
			if !ok {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, stringify(value))
		}
		grid = append(grid, cells)
	}
	return PreviewTable{Columns: columns, Rows: grid}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func renderFloat(v *float64) string {
	if v == nil {
		return Unavailable
	}
	return strconv.FormatFloat(round2(*v), 'f', 2, 64)
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
