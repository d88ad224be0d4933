package importer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func attendanceInfo() KindInfo {
	return attendanceKind().Info
}

func TestReadRecordsCSV(t *testing.T) {
	csv := strings.Join([]string{
		"date,EMPLOYEE,Hours,Site,Notes",
		"01/03/2024,Mario Rossi,8,Sede A,ignored",
		"",
		"02/03/2024,Luigi Verdi,7.5,Sede B,",
	}, "\n")

	records, err := ReadRecords("presenze.csv", []byte(csv), attendanceInfo())
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Headers match case-insensitively; unknown columns are dropped.
	assert.Equal(t, "Mario Rossi", records[0].Fields[ColEmployee])
	assert.Equal(t, "01/03/2024", records[0].Fields[ColDate])
	assert.NotContains(t, records[0].Fields, "Notes")

	// Row numbers follow the parsed rows; the CSV reader drops blank lines.
	assert.Equal(t, 2, records[0].Row)
	assert.Equal(t, 3, records[1].Row)
	assert.Equal(t, "presenze.csv", records[0].Origin)
}

func TestReadRecordsWorkbook(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Date", "Employee", "Hours", "Site"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"01/03/2024", "Mario Rossi", "8", "Sede A"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	records, err := ReadRecords("presenze.xlsx", buf.Bytes(), attendanceInfo())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Sede A", records[0].Fields[ColSite])
}

func TestReadRecordsMissingRequiredColumn(t *testing.T) {
	csv := "Date,Employee,Hours\n01/03/2024,Mario Rossi,8\n"

	_, err := ReadRecords("presenze.csv", []byte(csv), attendanceInfo())
	require.Error(t, err)

	var formatErr *InputFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, formatErr.Msg, "missing required column")
	assert.Contains(t, formatErr.Msg, ColSite)
}

func TestReadRecordsUnsupportedExtension(t *testing.T) {
	_, err := ReadRecords("notes.txt", []byte("Date,Employee,Hours,Site\n"), attendanceInfo())
	require.Error(t, err)

	var formatErr *InputFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, formatErr.Msg, "unsupported file type")
}

func TestReadRecordsEmptyFile(t *testing.T) {
	for _, data := range []string{"", "\n\n", "Date,Employee,Hours,Site\n"} {
		_, err := ReadRecords("empty.csv", []byte(data), attendanceInfo())
		var formatErr *InputFormatError
		require.ErrorAs(t, err, &formatErr, "input %q", data)
		assert.Equal(t, "no rows found", formatErr.Msg, "input %q", data)
	}
}

func TestReadRecordsSizeLimit(t *testing.T) {
	old := MaxFileSize
	MaxFileSize = 16
	defer func() { MaxFileSize = old }()

	_, err := ReadRecords("big.csv", bytes.Repeat([]byte("a"), 32), attendanceInfo())
	var formatErr *InputFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, formatErr.Msg, "limit")
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{` Mario `, "Mario"},
		{`="E001"`, "E001"},
		{`=SUM(A1)`, "SUM(A1)"},
		{`"quoted"`, "quoted"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanCell(tt.input), "input %q", tt.input)
	}
}

func TestSanitizeUTF8(t *testing.T) {
	valid := []byte("Mario Rossi")
	assert.Equal(t, valid, sanitizeUTF8(valid))

	invalid := []byte{'M', 0xff, 'o'}
	out := sanitizeUTF8(invalid)
	assert.True(t, bytes.ContainsRune(out, '�'))
}
