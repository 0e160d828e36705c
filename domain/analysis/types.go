package analysis

import "time"

// ColumnKind classifies a column for presentation purposes. The service
// currently emits "numeric" and "text"; anything else folds into KindOther
// so the projections stay total over future service versions.
type ColumnKind string

const (
	KindNumeric ColumnKind = "numeric"
	KindText    ColumnKind = "text"
	KindOther   ColumnKind = "other"
)

// Normalize maps unknown or absent kinds onto KindOther.
func (k ColumnKind) Normalize() ColumnKind {
	switch k {
	case KindNumeric, KindText:
		return k
	default:
		return KindOther
	}
}

// TopValue is one frequent value of a non-numeric column.
type TopValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ColumnStat is the per-column statistical summary computed by the service.
// Numeric aggregates are pointers: the service omits them for non-numeric
// columns and for numeric columns with no non-null values.
type ColumnStat struct {
	Column    string     `json:"column"`
	Dtype     string     `json:"dtype"`
	Kind      ColumnKind `json:"kind"`
	Missing   int        `json:"missing"`
	Mean      *float64   `json:"mean,omitempty"`
	Min       *float64   `json:"min,omitempty"`
	Max       *float64   `json:"max,omitempty"`
	TopValues []TopValue `json:"top_values,omitempty"`
}

// Result is the canonical analysis response for one uploaded dataset.
// Column order follows the source dataset and drives every derived view.
type Result struct {
	ID          string       `json:"id"`
	Rows        int          `json:"rows"`
	Cols        int          `json:"cols"`
	Columns     []ColumnStat `json:"columns"`
	Preview     []PreviewRow `json:"preview"`
	CleanedFile string       `json:"cleanedFile"`
	ReportPDF   string       `json:"reportPdf"`
}

// HistoryEntry identifies a past analysis. It deliberately lacks columns and
// preview data; the full Result must be refetched by ID before rendering.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Rows      int       `json:"rows"`
	Cols      int       `json:"cols"`
	CreatedAt time.Time `json:"created_at"`
}
