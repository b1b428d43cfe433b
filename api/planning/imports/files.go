package imports

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// DecodeFile turns an uploaded CSV/XLSX/XLS into a string table. The second
// return value reports whether the source is a spreadsheet, where cells may
// carry numeric Excel serial dates.
func DecodeFile(data []byte, filename string, delimiter rune) ([][]string, bool, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		rows, err := parseCSVFile(data, delimiter)
		return rows, false, err
	case ".xlsx":
		rows, err := parseExcelFile(data)
		return rows, true, err
	case ".xls":
		rows, err := parseXLSFile(data)
		return rows, true, err
	default:
		return nil, false, fmt.Errorf("unsupported file type: %s", ext)
	}
}

func parseCSVFile(data []byte, delimiter rune) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	if delimiter != 0 {
		r.Comma = delimiter
	}
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("csv file is empty")
	}
	return rows, nil
}

func parseExcelFile(data []byte) ([][]string, error) {
	xl, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer xl.Close()

	sheetName := xl.GetSheetName(0)
	if sheetName == "" {
		return nil, errors.New("workbook has no sheets")
	}
	rawRows, err := xl.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	if len(rawRows) == 0 {
		return nil, errors.New("worksheet is empty")
	}

	// Re-read cells via GetCellValue so formulas and formatting resolve
	rows := make([][]string, len(rawRows))
	for i, rawRow := range rawRows {
		rows[i] = make([]string, len(rawRow))
		for j := range rawRow {
			colName, _ := excelize.ColumnNumberToName(j + 1)
			cellRef := fmt.Sprintf("%s%d", colName, i+1)
			cellValue, cellErr := xl.GetCellValue(sheetName, cellRef)
			if cellErr == nil && cellValue != "" {
				rows[i][j] = cellValue
			} else {
				rows[i][j] = rawRow[j]
			}
		}
	}
	return rows, nil
}

func parseXLSFile(data []byte) ([][]string, error) {
	tmpFile, err := os.CreateTemp("", "import-*.xls")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmpFile.Name())
	defer tmpFile.Close()

	if _, err = tmpFile.Write(data); err != nil {
		return nil, err
	}
	tmpFile.Close()

	book, err := xls.Open(tmpFile.Name(), "utf-8")
	if err != nil {
		return nil, err
	}
	sheet := book.GetSheet(0)
	if sheet == nil {
		return nil, errors.New("no sheets found")
	}

	rows := [][]string{}
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, []string{})
			continue
		}
		rowData := []string{}
		for j := 0; j <= row.LastCol(); j++ {
			rowData = append(rowData, row.Col(j))
		}
		rows = append(rows, rowData)
	}
	if len(rows) == 0 {
		return nil, errors.New("worksheet is empty")
	}
	return rows, nil
}

// splitHeader separates the header row from the data rows. Headerless
// sources get positional pseudo-headers so mappings can still refer to
// columns by name.
func splitHeader(rows [][]string, hasHeader bool) ([]string, [][]string, error) {
	if hasHeader {
		if len(rows) < 2 {
			return nil, nil, errors.New("file must have a header row and at least one data row")
		}
		return rows[0], rows[1:], nil
	}
	if len(rows) < 1 {
		return nil, nil, errors.New("file has no data rows")
	}
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	headers := make([]string, width)
	for i := range headers {
		headers[i] = fmt.Sprintf("column_%d", i+1)
	}
	return headers, rows, nil
}

// DelimiterFromName maps a form value to a CSV delimiter rune. Unknown
// values fall back to comma.
func DelimiterFromName(name string) rune {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "semicolon", ";":
		return ';'
	case "tab", "\t":
		return '\t'
	default:
		return ','
	}
}
