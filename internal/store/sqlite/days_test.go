package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/tradecal/chinacal"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(chinacal.DateLayout, s)
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return d
}

func TestDatasetRoundTrip(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "calendar.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	ds := chinacal.Dataset{
		MinYear: 2018,
		MaxYear: 2018,
		Days: []chinacal.Day{
			{Date: "2018-04-28", Mark: "workday", Holiday: "labour_day"},
			{Date: "2018-04-29", Mark: "holiday", Holiday: "labour_day"},
			{Date: "2018-04-30", Mark: "in_lieu_holiday", Holiday: "labour_day"},
			{Date: "2018-05-01", Mark: "holiday", Holiday: "labour_day"},
		},
	}
	if err := WriteDataset(db, ds); err != nil {
		t.Fatalf("WriteDataset: %v", err)
	}
	// Writing twice must replace, not accumulate.
	if err := WriteDataset(db, ds); err != nil {
		t.Fatalf("WriteDataset again: %v", err)
	}

	got, err := ReadDataset(db)
	if err != nil {
		t.Fatalf("ReadDataset: %v", err)
	}
	if got.MinYear != 2018 || got.MaxYear != 2018 {
		t.Fatalf("years = %d..%d", got.MinYear, got.MaxYear)
	}
	if len(got.Days) != len(ds.Days) {
		t.Fatalf("len(days) = %d, want %d", len(got.Days), len(ds.Days))
	}
	for i := range ds.Days {
		if got.Days[i] != ds.Days[i] {
			t.Fatalf("day %d = %+v, want %+v", i, got.Days[i], ds.Days[i])
		}
	}

	// The loaded dataset must build a working table.
	table, err := chinacal.NewTable(got.MinYear, got.MaxYear, got.Days)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	cal := chinacal.New(table)
	holiday, err := cal.IsHoliday(mustDate(t, "2018-04-30"))
	if err != nil {
		t.Fatalf("IsHoliday: %v", err)
	}
	if !holiday {
		t.Fatalf("2018-04-30 should be a holiday after round trip")
	}
}
