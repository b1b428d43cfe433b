package imports

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionRow is one validated row from an uploaded file. Rows are consumed
// by the commit step and never stored as-is.
type SessionRow struct {
	Date        time.Time        `json:"-"`
	DateISO     string           `json:"date"`
	TherapyName string           `json:"therapy_type"`
	Sessions    int              `json:"sessions"`
	Revenue     *decimal.Decimal `json:"revenue,omitempty"`
	SourceRow   int              `json:"source_row"`
}

// RowIssue pins an error or warning to a row number as it appears in the
// uploaded file (header row counts).
type RowIssue struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ColumnMapping names the source columns for each semantic field. Date,
// therapy and sessions are required; revenue is optional.
type ColumnMapping struct {
	DateColumn     string `json:"date_column"`
	TherapyColumn  string `json:"therapy_type_column"`
	SessionsColumn string `json:"sessions_column"`
	RevenueColumn  string `json:"revenue_column,omitempty"`
}

// Complete reports whether all required fields are mapped.
func (m ColumnMapping) Complete() bool {
	return m.DateColumn != "" && m.TherapyColumn != "" && m.SessionsColumn != ""
}

// ParseConfig carries per-upload format options.
type ParseConfig struct {
	Delimiter   rune // CSV only; comma, semicolon or tab
	HasHeader   bool
	ExcelSerial bool // spreadsheet sources may carry numeric serial dates
}

// ParseResult is the outcome of running the row parser over a full upload.
type ParseResult struct {
	Valid    []SessionRow `json:"valid"`
	Errors   []RowIssue   `json:"errors"`
	Warnings []RowIssue   `json:"warnings"`
}

// DateRange is the closed span of dates seen in a parsed batch.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Preview summarizes a parsed batch for user confirmation before commit.
type Preview struct {
	ValidRows         int       `json:"valid_rows"`
	TotalSessions     int       `json:"total_sessions"`
	DateRange         DateRange `json:"date_range"`
	TherapyTypesFound []string  `json:"therapy_types_found"`
}

// TherapyRef is the slice of the catalog the import pipeline needs.
type TherapyRef struct {
	TherapyID       string          `json:"therapy_id"`
	Name            string          `json:"name"`
	PricePerSession decimal.Decimal `json:"price_per_session"`
}

// Resolution partitions the batch's therapy names against the catalog.
// Matching is case-insensitive exact; missing names never abort the import.
type Resolution struct {
	Matched map[string]TherapyRef `json:"matched"`
	Missing []string              `json:"missing"`
}

// PlanGroup is one (month, therapy) aggregate ready for upsert.
type PlanGroup struct {
	Month       string          `json:"month"`
	TherapyID   string          `json:"therapy_id"`
	TherapyName string          `json:"therapy_name"`
	Sessions    int             `json:"sessions"`
	Revenue     decimal.Decimal `json:"revenue"`
	RowCount    int             `json:"row_count"`
}

// CommitResult is the final import outcome. Every valid row lands in exactly
// one of imported or skipped; group-level DB failures are itemized in Errors.
type CommitResult struct {
	Success          bool       `json:"success"`
	ImportedCount    int        `json:"imported_count"`
	SkippedCount     int        `json:"skipped_count"`
	Errors           []RowIssue `json:"errors"`
	Warnings         []RowIssue `json:"warnings"`
	MissingTherapies []string   `json:"missing_therapies,omitempty"`
}
