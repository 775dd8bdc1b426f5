package chinacal

import (
	"errors"
	"testing"
	"time"
)

func TestNewTableRejectsBadRows(t *testing.T) {
	cases := []struct {
		name string
		days []Day
	}{
		{"unparseable date", []Day{{Date: "2018-13-01", Mark: "holiday", Holiday: "labour_day"}}},
		{"duplicate date", []Day{
			{Date: "2018-05-01", Mark: "holiday", Holiday: "labour_day"},
			{Date: "2018-05-01", Mark: "workday", Holiday: "labour_day"},
		}},
		{"unknown mark", []Day{{Date: "2018-05-01", Mark: "half_day", Holiday: "labour_day"}}},
		{"unknown holiday", []Day{{Date: "2018-05-01", Mark: "holiday", Holiday: "programmers_day"}}},
		{"date outside span", []Day{{Date: "1999-05-01", Mark: "holiday", Holiday: "labour_day"}}},
	}
	for _, tc := range cases {
		if _, err := NewTable(2004, 2026, tc.days); !errors.Is(err, ErrBadDataset) {
			t.Fatalf("%s: err = %v, want ErrBadDataset", tc.name, err)
		}
	}
}

func TestParseDatasetRejectsBadJSON(t *testing.T) {
	if _, err := ParseDataset([]byte("{")); !errors.Is(err, ErrBadDataset) {
		t.Fatalf("err = %v, want ErrBadDataset", err)
	}
}

func TestSupportedRange(t *testing.T) {
	table, err := NewTable(2010, 2012, nil)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	min, max := table.SupportedRange()
	if min.Format(DateLayout) != "2010-01-01" || max.Format(DateLayout) != "2012-12-31" {
		t.Fatalf("range = %s..%s", min.Format(DateLayout), max.Format(DateLayout))
	}
	if table.Covers(time.Date(2009, 12, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("2009-12-31 should not be covered")
	}
	if !table.Covers(time.Date(2012, 12, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("2012-12-31 should be covered")
	}
}

func TestExportRoundTrip(t *testing.T) {
	table, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded: %v", err)
	}
	ds := table.Export()
	again, err := NewTable(ds.MinYear, ds.MaxYear, ds.Days)
	if err != nil {
		t.Fatalf("NewTable(Export()): %v", err)
	}
	if len(ds.Days) == 0 {
		t.Fatalf("export produced no days")
	}
	for i := 1; i < len(ds.Days); i++ {
		if ds.Days[i-1].Date >= ds.Days[i].Date {
			t.Fatalf("export not sorted: %s before %s", ds.Days[i-1].Date, ds.Days[i].Date)
		}
	}
	d := time.Date(2018, 4, 30, 0, 0, 0, 0, time.UTC)
	want, _ := table.Lookup(d)
	got, ok := again.Lookup(d)
	if !ok || got != want {
		t.Fatalf("round trip lost 2018-04-30: got %+v want %+v", got, want)
	}
}

func TestEmbeddedDatasetIsSane(t *testing.T) {
	table, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded: %v", err)
	}
	// Makeup workdays exist only on weekends; that is the whole point of
	// the mark.
	for _, day := range table.Export().Days {
		if day.Mark != string(MarkWorkday) {
			continue
		}
		d, err := time.Parse(DateLayout, day.Date)
		if err != nil {
			t.Fatalf("parse %s: %v", day.Date, err)
		}
		if !isWeekend(d) {
			t.Fatalf("workday entry %s falls on a %s", day.Date, d.Weekday())
		}
	}
}
