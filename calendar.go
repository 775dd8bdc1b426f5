// Package chinacal answers whether a calendar date in China is a public
// holiday, a regular workday, a weekend turned into a makeup workday, or a
// trading day on the interbank bond market or the A-share exchanges.
//
// Chinese public holidays are set by annual government decree, not by rule,
// so the package is driven by a curated exception table covering a bounded
// span of years. Dates without an explicit entry follow the plain weekday
// rule: Monday-Friday working, Saturday-Sunday resting.
package chinacal

import (
	"fmt"
	"time"
)

// Calendar exposes classification, trading-day and range queries over a
// read-only exception table. All methods are pure and safe for concurrent
// use.
type Calendar struct {
	table *Table
}

// New returns a calendar over t.
func New(t *Table) *Calendar {
	return &Calendar{table: t}
}

// Table returns the underlying exception table.
func (c *Calendar) Table() *Table {
	return c.table
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (c *Calendar) lookup(d time.Time) (Entry, bool, error) {
	if !c.table.Covers(d) {
		min, max := c.table.SupportedRange()
		return Entry{}, false, fmt.Errorf("%s not in %s..%s: %w",
			d.Format(DateLayout), min.Format(DateLayout), max.Format(DateLayout), ErrOutOfRange)
	}
	e, ok := c.table.Lookup(d)
	return e, ok, nil
}

// IsWorkday reports whether d is a working day: an explicit makeup workday,
// or a Monday-Friday with no entry.
func (c *Calendar) IsWorkday(d time.Time) (bool, error) {
	e, ok, err := c.lookup(d)
	if err != nil {
		return false, err
	}
	if ok {
		return e.Mark == MarkWorkday, nil
	}
	return !isWeekend(d), nil
}

// IsHoliday reports whether d is a named statutory rest day. Plain weekends
// are not holidays.
func (c *Calendar) IsHoliday(d time.Time) (bool, error) {
	e, ok, err := c.lookup(d)
	if err != nil {
		return false, err
	}
	return ok && e.OffDay(), nil
}

// IsInLieu reports whether d is a rest day granted in lieu of a worked
// weekend.
func (c *Calendar) IsInLieu(d time.Time) (bool, error) {
	e, ok, err := c.lookup(d)
	if err != nil {
		return false, err
	}
	return ok && e.Mark == MarkInLieuHoliday, nil
}

// HolidayDetail returns whether d is a holiday and the holiday it belongs
// to. Makeup workdays report (false, name-of-compensated-holiday); dates
// with no entry report (false, "").
func (c *Calendar) HolidayDetail(d time.Time) (bool, Holiday, error) {
	e, ok, err := c.lookup(d)
	if err != nil {
		return false, "", err
	}
	if !ok {
		return false, "", nil
	}
	return e.OffDay(), e.Holiday, nil
}

// IsInterbankTradingDay reports whether the interbank bond market trades on
// d. The interbank market follows the labor calendar literally, so weekend
// makeup workdays are trading days.
func (c *Calendar) IsInterbankTradingDay(d time.Time) (bool, error) {
	return c.IsWorkday(d)
}

// IsAShareTradingDay reports whether the A-share exchanges trade on d.
// The exchanges keep a hard five-day week: Saturday and Sunday never trade,
// even when designated makeup workdays.
func (c *Calendar) IsAShareTradingDay(d time.Time) (bool, error) {
	if isWeekend(d) {
		// Still range-check so out-of-range weekends fail like any
		// other date.
		if _, _, err := c.lookup(d); err != nil {
			return false, err
		}
		return false, nil
	}
	return c.IsWorkday(d)
}

// Dates expands [start, end] into its individual days in ascending order.
// Both endpoints must lie in the supported span and start must not be after
// end.
func (c *Calendar) Dates(start, end time.Time) ([]time.Time, error) {
	if _, _, err := c.lookup(start); err != nil {
		return nil, err
	}
	if _, _, err := c.lookup(end); err != nil {
		return nil, err
	}
	start = truncateDay(start)
	end = truncateDay(end)
	if start.After(end) {
		return nil, fmt.Errorf("%s..%s: %w", start.Format(DateLayout), end.Format(DateLayout), ErrInvalidRange)
	}
	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out, nil
}

func truncateDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func (c *Calendar) filterRange(start, end time.Time, pred func(time.Time) (bool, error)) ([]time.Time, error) {
	dates, err := c.Dates(start, end)
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		ok, err := pred(d)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, d)
		}
	}
	return out, nil
}

// Workdays returns every working day in [start, end], ascending.
func (c *Calendar) Workdays(start, end time.Time) ([]time.Time, error) {
	return c.filterRange(start, end, c.IsWorkday)
}

// Holidays returns every holiday in [start, end], ascending.
func (c *Calendar) Holidays(start, end time.Time) ([]time.Time, error) {
	return c.filterRange(start, end, c.IsHoliday)
}

// InterbankTradingDays returns every interbank trading day in [start, end].
func (c *Calendar) InterbankTradingDays(start, end time.Time) ([]time.Time, error) {
	return c.filterRange(start, end, c.IsInterbankTradingDay)
}

// AShareTradingDays returns every A-share trading day in [start, end].
func (c *Calendar) AShareTradingDays(start, end time.Time) ([]time.Time, error) {
	return c.filterRange(start, end, c.IsAShareTradingDay)
}

// DayFlags carries every per-date flag for one date.
type DayFlags struct {
	Date             time.Time
	Workday          bool
	Holiday          bool
	InLieu           bool
	HolidayName      Holiday
	InterbankTrading bool
	AShareTrading    bool
}

// Flags evaluates all predicates for an explicit, not necessarily
// contiguous, set of dates. Output order matches input order.
func (c *Calendar) Flags(dates []time.Time) ([]DayFlags, error) {
	out := make([]DayFlags, 0, len(dates))
	for _, d := range dates {
		e, ok, err := c.lookup(d)
		if err != nil {
			return nil, err
		}
		f := DayFlags{Date: truncateDay(d)}
		if ok {
			f.Workday = e.Mark == MarkWorkday
			f.Holiday = e.OffDay()
			f.InLieu = e.Mark == MarkInLieuHoliday
			f.HolidayName = e.Holiday
		} else {
			f.Workday = !isWeekend(d)
		}
		f.InterbankTrading = f.Workday
		f.AShareTrading = f.Workday && !isWeekend(d)
		out = append(out, f)
	}
	return out, nil
}
