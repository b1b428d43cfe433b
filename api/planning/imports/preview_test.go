package imports

import (
	"reflect"
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBuildPreview_EmptyBatch(t *testing.T) {
	p := BuildPreview(nil)
	if p.ValidRows != 0 || p.TotalSessions != 0 {
		t.Errorf("expected zero counts, got %+v", p)
	}
	if p.DateRange.Start != "" || p.DateRange.End != "" {
		t.Errorf("expected empty date range, got %+v", p.DateRange)
	}
	if len(p.TherapyTypesFound) != 0 {
		t.Errorf("expected no therapy types, got %v", p.TherapyTypesFound)
	}
}

func TestBuildPreview_Summary(t *testing.T) {
	rows := []SessionRow{
		{Date: day("2024-03-15"), TherapyName: "Physiotherapie", Sessions: 5},
		{Date: day("2024-03-02"), TherapyName: "Massage", Sessions: 3},
		{Date: day("2024-04-01"), TherapyName: "physiotherapie", Sessions: 2},
	}

	p := BuildPreview(rows)
	if p.ValidRows != 3 {
		t.Errorf("valid rows: got %d, want 3", p.ValidRows)
	}
	if p.TotalSessions != 10 {
		t.Errorf("total sessions: got %d, want 10", p.TotalSessions)
	}
	if p.DateRange.Start != "2024-03-02" || p.DateRange.End != "2024-04-01" {
		t.Errorf("date range: got %+v", p.DateRange)
	}
	// Distinct names are case-insensitive; the first spelling wins.
	want := []string{"Massage", "Physiotherapie"}
	if !reflect.DeepEqual(p.TherapyTypesFound, want) {
		t.Errorf("therapy types: got %v, want %v", p.TherapyTypesFound, want)
	}
}

func TestBuildPreview_SingleRowRange(t *testing.T) {
	p := BuildPreview([]SessionRow{{Date: day("2024-05-10"), TherapyName: "Massage", Sessions: 1}})
	if p.DateRange.Start != "2024-05-10" || p.DateRange.End != "2024-05-10" {
		t.Errorf("single-row range: got %+v", p.DateRange)
	}
}
