package chinacal

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"
)

// DateLayout is the wire format for all dates handled by this package.
const DateLayout = "2006-01-02"

var (
	// ErrOutOfRange is returned for dates outside the table's supported span.
	ErrOutOfRange = errors.New("date outside supported calendar range")
	// ErrInvalidRange is returned when a range query has start after end.
	ErrInvalidRange = errors.New("invalid date range: start after end")
	// ErrBadDataset wraps every dataset validation failure. A table that
	// fails to load must abort startup; there is no partial load.
	ErrBadDataset = errors.New("bad calendar dataset")
)

// Mark classifies an exception-table entry. Dates without an entry follow the
// default weekday rule (Mon-Fri working, Sat-Sun resting).
type Mark string

const (
	// MarkWorkday is a weekend day reclassified as a mandatory working day
	// to pay for a nearby holiday span.
	MarkWorkday Mark = "workday"
	// MarkHoliday is a statutory rest day, or a weekend day inside a
	// holiday span.
	MarkHoliday Mark = "holiday"
	// MarkInLieuHoliday is a weekday rest day granted in lieu of a worked
	// weekend. It counts as a holiday for every predicate except IsInLieu.
	MarkInLieuHoliday Mark = "in_lieu_holiday"
)

func parseMark(s string) (Mark, error) {
	switch m := Mark(s); m {
	case MarkWorkday, MarkHoliday, MarkInLieuHoliday:
		return m, nil
	}
	return "", fmt.Errorf("unknown mark %q", s)
}

// Entry is one exception-table row: the classification of a single date.
type Entry struct {
	Mark    Mark
	Holiday Holiday
}

// OffDay reports whether the entry designates a rest day.
func (e Entry) OffDay() bool {
	return e.Mark == MarkHoliday || e.Mark == MarkInLieuHoliday
}

// Day is the flat, language-agnostic form of one entry, as stored in the
// JSON dataset and the sqlite export. Other implementations can regenerate
// the table from a list of these without re-running the curation process.
type Day struct {
	Date    string `json:"date"`
	Mark    string `json:"mark"`
	Holiday string `json:"holiday"`
}

// Dataset is the on-disk dataset document.
type Dataset struct {
	MinYear int   `json:"min_year"`
	MaxYear int   `json:"max_year"`
	Days    []Day `json:"days"`
}

// Table is the immutable date-classification table. It is built once at
// startup and never mutated afterwards, so it is safe for any number of
// concurrent readers.
type Table struct {
	entries          map[string]Entry
	minYear, maxYear int
}

// NewTable validates days against [minYear, maxYear] and builds a table.
// Any malformed row (unparseable date, duplicate date, unknown mark or
// holiday, date outside the year span) fails the whole load.
func NewTable(minYear, maxYear int, days []Day) (*Table, error) {
	if minYear <= 0 || maxYear < minYear {
		return nil, fmt.Errorf("%w: year span %d..%d", ErrBadDataset, minYear, maxYear)
	}
	entries := make(map[string]Entry, len(days))
	for _, day := range days {
		d, err := time.Parse(DateLayout, day.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: unparseable date %q", ErrBadDataset, day.Date)
		}
		if y := d.Year(); y < minYear || y > maxYear {
			return nil, fmt.Errorf("%w: date %s outside year span %d..%d", ErrBadDataset, day.Date, minYear, maxYear)
		}
		if _, dup := entries[day.Date]; dup {
			return nil, fmt.Errorf("%w: duplicate date %s", ErrBadDataset, day.Date)
		}
		mark, err := parseMark(day.Mark)
		if err != nil {
			return nil, fmt.Errorf("%w: date %s: %v", ErrBadDataset, day.Date, err)
		}
		holiday, err := ParseHoliday(day.Holiday)
		if err != nil {
			return nil, fmt.Errorf("%w: date %s: %v", ErrBadDataset, day.Date, err)
		}
		entries[day.Date] = Entry{Mark: mark, Holiday: holiday}
	}
	return &Table{entries: entries, minYear: minYear, maxYear: maxYear}, nil
}

// ParseDataset builds a table from the JSON dataset document.
func ParseDataset(b []byte) (*Table, error) {
	var ds Dataset
	if err := json.Unmarshal(b, &ds); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDataset, err)
	}
	return NewTable(ds.MinYear, ds.MaxYear, ds.Days)
}

// Lookup returns the explicit entry for d, if any.
func (t *Table) Lookup(d time.Time) (Entry, bool) {
	e, ok := t.entries[d.Format(DateLayout)]
	return e, ok
}

// Covers reports whether d lies inside the supported span.
func (t *Table) Covers(d time.Time) bool {
	y := d.Year()
	return y >= t.minYear && y <= t.maxYear
}

// SupportedRange returns the first and last supported dates, inclusive.
func (t *Table) SupportedRange() (min, max time.Time) {
	min = time.Date(t.minYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	max = time.Date(t.maxYear, time.December, 31, 0, 0, 0, 0, time.UTC)
	return min, max
}

// Export returns the table as a dataset document with days in ascending
// date order. Export followed by NewTable round-trips exactly.
func (t *Table) Export() Dataset {
	days := make([]Day, 0, len(t.entries))
	for date, e := range t.entries {
		days = append(days, Day{Date: date, Mark: string(e.Mark), Holiday: string(e.Holiday)})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return Dataset{MinYear: t.minYear, MaxYear: t.maxYear, Days: days}
}

// ExportJSON renders Export as indented JSON.
func (t *Table) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(t.Export(), "", " ")
}
