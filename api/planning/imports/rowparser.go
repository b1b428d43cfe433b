package imports

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"PraxisPlan/api/constants"

	"github.com/shopspring/decimal"
)

// excelEpochOffsetDays is the distance between the Excel serial epoch
// (1899-12-30) and the Unix epoch.
const excelEpochOffsetDays = 25569

var errIncompleteMapping = errors.New(constants.ErrIncompleteMapping)

// ParseRows runs the row parser over a decoded table. A malformed row is
// recorded as an error and excluded; parsing always continues to the end.
// The function is pure: identical input yields identical output.
func ParseRows(rows [][]string, mapping ColumnMapping, cfg ParseConfig) (ParseResult, error) {
	result := ParseResult{
		Valid:    []SessionRow{},
		Errors:   []RowIssue{},
		Warnings: []RowIssue{},
	}

	if !mapping.Complete() {
		return result, errIncompleteMapping
	}

	headers, dataRows, err := splitHeader(rows, cfg.HasHeader)
	if err != nil {
		return result, err
	}

	dateIdx := headerIndex(headers, mapping.DateColumn)
	therapyIdx := headerIndex(headers, mapping.TherapyColumn)
	sessionsIdx := headerIndex(headers, mapping.SessionsColumn)
	revenueIdx := -1
	if mapping.RevenueColumn != "" {
		revenueIdx = headerIndex(headers, mapping.RevenueColumn)
	}
	if dateIdx < 0 || therapyIdx < 0 || sessionsIdx < 0 {
		return result, fmt.Errorf("mapped column not found in header row")
	}

	rowOffset := 1 // file row number of the first data row
	if cfg.HasHeader {
		rowOffset = 2
	}

	for i, row := range dataRows {
		fileRow := i + rowOffset
		if isEmptyRow(row) {
			continue
		}

		dateStr := cellAt(row, dateIdx)
		therapyName := strings.TrimSpace(cellAt(row, therapyIdx))
		sessionsStr := cellAt(row, sessionsIdx)

		if dateStr == "" || therapyName == "" || strings.TrimSpace(sessionsStr) == "" {
			result.Errors = append(result.Errors, RowIssue{
				Row:     fileRow,
				Message: "missing required field (date, therapy or sessions)",
			})
			continue
		}

		date, err := parseImportDate(dateStr, cfg.ExcelSerial)
		if err != nil {
			result.Errors = append(result.Errors, RowIssue{Row: fileRow, Message: err.Error()})
			continue
		}

		sessions, err := parseSessionCount(sessionsStr)
		if err != nil {
			result.Errors = append(result.Errors, RowIssue{Row: fileRow, Message: err.Error()})
			continue
		}

		var revenue *decimal.Decimal
		if revenueIdx >= 0 {
			revStr := strings.TrimSpace(cellAt(row, revenueIdx))
			if revStr != "" {
				d, err := parseAmount(revStr)
				if err != nil {
					result.Errors = append(result.Errors, RowIssue{Row: fileRow, Message: err.Error()})
					continue
				}
				revenue = &d
			}
		}

		result.Valid = append(result.Valid, SessionRow{
			Date:        date,
			DateISO:     date.Format(constants.DateFormat),
			TherapyName: therapyName,
			Sessions:    sessions,
			Revenue:     revenue,
			SourceRow:   fileRow,
		})
	}

	return result, nil
}

func headerIndex(headers []string, name string) int {
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(name)) {
			return i
		}
	}
	return -1
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseImportDate accepts German DD.MM.YYYY and ISO YYYY-MM-DD dates; for
// spreadsheet sources it also accepts numeric Excel serial dates (days since
// 1899-12-30).
func parseImportDate(s string, allowSerial bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	layouts := []string{
		constants.DateFormatGerman, "2.1.2006",
		constants.DateFormat, "2006-1-2",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if allowSerial {
		if t, err := parseExcelSerialDate(s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// parseExcelSerialDate converts an Excel serial date into a time.Time via
// the Unix epoch offset of 25569 days.
func parseExcelSerialDate(s string) (time.Time, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return time.Time{}, err
	}
	unixMillis := (f - excelEpochOffsetDays) * 86400 * 1000
	t := time.UnixMilli(int64(unixMillis)).UTC()
	if t.Year() < 1900 || t.Year() > 2200 {
		return time.Time{}, fmt.Errorf("excel serial %q out of range", s)
	}
	return t, nil
}

// parseSessionCount reads a session count, tolerating the German decimal
// comma ("3,0" reads as 3). Values are rounded to the nearest integer;
// negative or non-numeric counts are errors.
func parseSessionCount(s string) (int, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	f, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid session count %q", s)
	}
	if f < 0 {
		return 0, fmt.Errorf("negative session count %q", s)
	}
	return int(math.Round(f)), nil
}

// parseAmount reads a money value with either decimal separator.
func parseAmount(s string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount %q", s)
	}
	return d, nil
}
