package importer

// attendance.go defines the attendance import kind: one row per worked day,
// referencing an employee and a site by free text. Rows either carry a
// plain hours total or a full clock-in/clock-out pair; open-ended rows
// (one clock without the other) are rejected from batch import.

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sitewise-app/sitewise/internal/masterdata"
)

// Attendance column names.
const (
	ColDate     = "Date"
	ColEmployee = "Employee"
	ColHours    = "Hours"
	ColSite     = "Site"
	ColClockIn  = "Clock In"
	ColClockOut = "Clock Out"
)

// AttendanceEntry is one validated worked-day record.
type AttendanceEntry struct {
	EmployeeID string
	SiteID     string
	Date       time.Time
	Hours      float64
	ClockIn    *time.Time
	ClockOut   *time.Time

	// Display names kept for preview rendering.
	EmployeeName string
	SiteName     string
}

func attendanceKind() KindDefinition {
	return KindDefinition{
		Info: KindInfo{
			Key:   "attendance",
			Label: "Attendance",
			Specs: []FieldSpec{
				{Name: ColDate, Required: true},
				{Name: ColEmployee, Required: true},
				{Name: ColHours, Required: true},
				{Name: ColSite, Required: true},
				{Name: ColClockIn},
				{Name: ColClockOut},
			},
		},
		Build:      buildAttendance,
		Duplicates: noDuplicates{},
		Render:     renderAttendance,
	}
}

func buildAttendance(rec RawRecord, idx *masterdata.Index) (any, *RowError) {
	date, err := ParseDate(rec.field(ColDate))
	if err != nil {
		return nil, normErr(rec.Row, ColDate, rec.field(ColDate), "invalid date")
	}

	employee := Resolve(idx, masterdata.KindEmployee, rec.field(ColEmployee))
	if !employee.Resolved() {
		return nil, resolveErr(rec.Row, ColEmployee, employee.Attempted)
	}
	site := Resolve(idx, masterdata.KindSite, rec.field(ColSite))
	if !site.Resolved() {
		return nil, resolveErr(rec.Row, ColSite, site.Attempted)
	}

	entry := &AttendanceEntry{
		EmployeeID:   employee.ID,
		SiteID:       site.ID,
		Date:         date,
		EmployeeName: rec.field(ColEmployee),
		SiteName:     rec.field(ColSite),
	}

	inRaw, outRaw := rec.field(ColClockIn), rec.field(ColClockOut)
	switch {
	case inRaw != "" && outRaw != "":
		clockIn, err := ParseClock(inRaw)
		if err != nil {
			return nil, normErr(rec.Row, ColClockIn, inRaw, "invalid time")
		}
		clockOut, err := ParseClock(outRaw)
		if err != nil {
			return nil, normErr(rec.Row, ColClockOut, outRaw, "invalid time")
		}
		if !clockOut.After(clockIn) {
			return nil, semanticErr(rec.Row, "clock-out must be after clock-in")
		}
		entry.ClockIn, entry.ClockOut = &clockIn, &clockOut
		entry.Hours = clockOut.Sub(clockIn).Hours()

	case inRaw != "" || outRaw != "":
		return nil, semanticErr(rec.Row, "attendance rows need both clock-in and clock-out")

	default:
		hours, err := ParseDecimal(rec.field(ColHours))
		if err != nil {
			return nil, normErr(rec.Row, ColHours, rec.field(ColHours), "invalid number")
		}
		if hours <= 0 || hours > 24 {
			return nil, semanticErr(rec.Row, fmt.Sprintf("hours must be between 0 and 24, got %s", rec.field(ColHours)))
		}
		entry.Hours = hours
	}

	return entry, nil
}

func renderAttendance(entity any) map[string]string {
	e := entity.(*AttendanceEntry)
	out := map[string]string{
		ColDate:     e.Date.Format("2006-01-02"),
		ColEmployee: e.EmployeeName,
		ColSite:     e.SiteName,
		ColHours:    strconv.FormatFloat(e.Hours, 'f', -1, 64),
	}
	if e.ClockIn != nil && e.ClockOut != nil {
		out[ColClockIn] = e.ClockIn.Format("15:04")
		out[ColClockOut] = e.ClockOut.Format("15:04")
	}
	return out
}

// noDuplicates is the policy for kinds where every valid row is independent.
type noDuplicates struct{}

func (noDuplicates) BatchKey(any) string { return "" }

func (noDuplicates) ExistingID(any, *masterdata.Index) (string, bool) { return "", false }

func (noDuplicates) AttemptedText(any) string { return "" }
