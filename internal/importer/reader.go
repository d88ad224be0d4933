package importer

// reader.go turns raw file bytes into an ordered sequence of RawRecords.
// The only whole-batch failure mode lives here: unsupported or unreadable
// files and missing required headers abort before any row is touched.

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// MaxFileSize is the maximum accepted input size. Overridable from config.
var MaxFileSize int64 = 20 * 1024 * 1024

var spreadsheetExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
}

// ReadRecords parses a spreadsheet into one RawRecord per data row.
// Header names are matched case-insensitively and trimmed against the
// kind's column set; unknown headers are ignored. Empty rows are skipped.
func ReadRecords(filename string, data []byte, info KindInfo) ([]RawRecord, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !spreadsheetExtensions[ext] {
		return nil, &InputFormatError{Msg: fmt.Sprintf("unsupported file type %q", ext)}
	}
	if int64(len(data)) > MaxFileSize {
		return nil, &InputFormatError{Msg: fmt.Sprintf("file exceeds %dMB limit", MaxFileSize/(1024*1024))}
	}

	var rows [][]string
	var err error
	if ext == ".csv" {
		rows, err = parseCSV(sanitizeUTF8(data))
		if err != nil {
			return nil, &InputFormatError{Msg: fmt.Sprintf("unable to read file: %v", err)}
		}
	} else {
		rows, err = parseWorkbook(data)
		if err != nil {
			return nil, &InputFormatError{Msg: fmt.Sprintf("unable to read file: %v", err)}
		}
	}

	headerLine, header := findHeader(rows)
	if header == nil {
		return nil, &InputFormatError{Msg: "no rows found"}
	}

	colIndex, missing := matchHeader(header, info)
	if missing != "" {
		return nil, &InputFormatError{Msg: fmt.Sprintf("missing required column %q", missing)}
	}

	var records []RawRecord
	for i, row := range rows[headerLine+1:] {
		if isEmptyRow(row) {
			continue
		}
		fields := make(map[string]string, len(colIndex))
		for name, pos := range colIndex {
			if pos < len(row) {
				fields[name] = cleanCell(row[pos])
			}
		}
		records = append(records, RawRecord{
			Origin: filepath.Base(filename),
			Row:    headerLine + i + 2, // 1-indexed, after header
			Fields: fields,
		})
	}
	if len(records) == 0 {
		return nil, &InputFormatError{Msg: "no rows found"}
	}
	return records, nil
}

func parseCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}

// parseWorkbook reads the first sheet of an Excel workbook.
func parseWorkbook(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

// findHeader returns the first non-empty row and its index.
func findHeader(rows [][]string) (int, []string) {
	for i, row := range rows {
		if !isEmptyRow(row) {
			return i, row
		}
	}
	return -1, nil
}

// matchHeader maps canonical column names to their position in the header.
// Returns the first missing required column name, if any.
func matchHeader(header []string, info KindInfo) (map[string]int, string) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(cleanCell(h))] = i
	}

	colIndex := make(map[string]int, len(info.Specs))
	for _, spec := range info.Specs {
		pos, ok := index[strings.ToLower(spec.Name)]
		if !ok {
			if spec.Required {
				return nil, spec.Name
			}
			continue
		}
		colIndex[spec.Name] = pos
	}
	return colIndex, ""
}

// cleanCell removes common spreadsheet artifacts from a cell value:
// surrounding whitespace, Excel formula prefixes (="..."), stray quotes.
func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}
	return strings.Trim(s, `"'`)
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// sanitizeUTF8 replaces invalid byte sequences with the replacement rune so
// downstream parsing never chokes on encoding artifacts.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}
	var buf bytes.Buffer
	buf.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}
	return buf.Bytes()
}
