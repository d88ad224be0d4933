package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitewise-app/sitewise/internal/masterdata"
)

func testIndex() *masterdata.Index {
	return &masterdata.Index{
		Employees: []masterdata.Entity{
			{ID: "emp-1", DisplayName: "Mario Rossi"},
		},
		Sites: []masterdata.Entity{
			{ID: "site-1", DisplayName: "Sede A"},
		},
		Materials: []masterdata.Entity{
			{ID: "mat-1", Code: "ARV225A", DisplayName: "Pittura Bianca", Qualifier: "ColorCasa"},
		},
	}
}

func attendanceRecord(row int, fields map[string]string) RawRecord {
	return RawRecord{Origin: "test.csv", Row: row, Fields: fields}
}

func TestClassifyAttendanceValidAndError(t *testing.T) {
	kind, ok := Get("attendance")
	require.True(t, ok)
	c := NewClassifier(kind, testIndex())

	rows := c.ClassifyAll([]RawRecord{
		attendanceRecord(2, map[string]string{
			ColDate: "01/03/2024", ColEmployee: "Mario Rossi", ColHours: "8", ColSite: "Sede A",
		}),
		attendanceRecord(3, map[string]string{
			ColDate: "bad-date", ColEmployee: "Mario Rossi", ColHours: "8", ColSite: "Sede A",
		}),
	})

	require.Len(t, rows, 2)
	assert.Equal(t, ClassValid, rows[0].Class)

	entry := rows[0].Entity.(*AttendanceEntry)
	assert.Equal(t, "emp-1", entry.EmployeeID)
	assert.Equal(t, "site-1", entry.SiteID)
	assert.InDelta(t, 8.0, entry.Hours, 1e-9)

	assert.Equal(t, ClassError, rows[1].Class)
	require.NotNil(t, rows[1].Err)
	assert.Equal(t, KindNormalization, rows[1].Err.Kind)
	assert.Equal(t, 3, rows[1].Err.Row)
	assert.Equal(t, ColDate, rows[1].Err.Field)
}

func TestClassifyAttendanceClockPair(t *testing.T) {
	kind, _ := Get("attendance")
	c := NewClassifier(kind, testIndex())

	row := c.Classify(attendanceRecord(2, map[string]string{
		ColDate: "01/03/2024", ColEmployee: "Mario Rossi", ColHours: "",
		ColSite: "Sede A", ColClockIn: "08:00", ColClockOut: "17:00",
	}))
	require.Equal(t, ClassValid, row.Class)
	entry := row.Entity.(*AttendanceEntry)
	assert.InDelta(t, 9.0, entry.Hours, 1e-9)
	require.NotNil(t, entry.ClockIn)
	require.NotNil(t, entry.ClockOut)
}

func TestClassifyAttendanceZeroDurationIsError(t *testing.T) {
	kind, _ := Get("attendance")
	c := NewClassifier(kind, testIndex())

	row := c.Classify(attendanceRecord(2, map[string]string{
		ColDate: "01/03/2024", ColEmployee: "Mario Rossi", ColHours: "8",
		ColSite: "Sede A", ColClockIn: "08:00", ColClockOut: "08:00",
	}))
	assert.Equal(t, ClassError, row.Class)
	require.NotNil(t, row.Err)
	assert.Equal(t, KindSemantic, row.Err.Kind)
}

func TestClassifyAttendanceHalfClockIsError(t *testing.T) {
	kind, _ := Get("attendance")
	c := NewClassifier(kind, testIndex())

	row := c.Classify(attendanceRecord(2, map[string]string{
		ColDate: "01/03/2024", ColEmployee: "Mario Rossi", ColHours: "8",
		ColSite: "Sede A", ColClockIn: "08:00",
	}))
	assert.Equal(t, ClassError, row.Class)
	assert.Equal(t, KindSemantic, row.Err.Kind)
}

func TestClassifyAttendanceUnresolvedSite(t *testing.T) {
	kind, _ := Get("attendance")
	c := NewClassifier(kind, testIndex())

	row := c.Classify(attendanceRecord(2, map[string]string{
		ColDate: "01/03/2024", ColEmployee: "Mario Rossi", ColHours: "8", ColSite: "Cantiere Fantasma",
	}))
	assert.Equal(t, ClassError, row.Class)
	assert.Equal(t, KindResolution, row.Err.Kind)
	assert.Contains(t, row.Err.Msg, "Cantiere Fantasma")
}

func materialRecord(row int, name, brand string) RawRecord {
	return RawRecord{Origin: "catalog.csv", Row: row, Fields: map[string]string{
		ColProductName: name, ColBrand: brand, ColCategory: "Vernici",
	}}
}

func TestClassifyMaterialExistingDuplicate(t *testing.T) {
	kind, ok := Get("materials")
	require.True(t, ok)
	c := NewClassifier(kind, testIndex())

	row := c.Classify(materialRecord(2, "pittura  BIANCA", "ColorCasa"))
	assert.Equal(t, ClassDuplicate, row.Class)
	assert.Equal(t, "mat-1", row.MatchedID)
	assert.Contains(t, row.AttemptedText, "pittura  BIANCA")
}

func TestClassifyMaterialBatchDuplicate(t *testing.T) {
	kind, _ := Get("materials")
	c := NewClassifier(kind, testIndex())

	rows := c.ClassifyAll([]RawRecord{
		materialRecord(2, "Stucco Rapido", "EdilPro"),
		materialRecord(3, "STUCCO RAPIDO", "edilpro"),
	})

	assert.Equal(t, ClassValid, rows[0].Class)
	assert.Equal(t, ClassDuplicate, rows[1].Class)
	assert.Equal(t, "batch:row-2", rows[1].MatchedID)
}

func TestClassifyMaterialDistinctBrandsNotDuplicates(t *testing.T) {
	kind, _ := Get("materials")
	c := NewClassifier(kind, testIndex())

	rows := c.ClassifyAll([]RawRecord{
		materialRecord(2, "Stucco Rapido", "EdilPro"),
		materialRecord(3, "Stucco Rapido", "MuroForte"),
	})

	assert.Equal(t, ClassValid, rows[0].Class)
	assert.Equal(t, ClassValid, rows[1].Class)
}
