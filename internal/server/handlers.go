package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tradecal/chinacal"
)

func parseDate(value string) (time.Time, error) {
	d, err := time.Parse(chinacal.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return d, nil
}

func parseBool(value string, def bool) (bool, error) {
	if value == "" {
		return def, nil
	}
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("boolean parameters accept true/false/1/0/yes/no/on/off, got %q", value)
}

// collectDates accepts either repeated dates params or a start/end pair,
// mirroring the flag endpoints' contract.
func (s *Server) collectDates(w http.ResponseWriter, q url.Values) ([]time.Time, bool) {
	if raw := q["dates"]; len(raw) > 0 {
		out := make([]time.Time, 0, len(raw))
		for _, v := range raw {
			d, err := parseDate(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeMalformedDate, err.Error())
				return nil, false
			}
			out = append(out, d)
		}
		return out, true
	}
	start, end := q.Get("start"), q.Get("end")
	if start == "" || end == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest,
			"provide either repeated 'dates' parameters or both 'start' and 'end'")
		return nil, false
	}
	startDate, endDate, ok := s.parseRange(w, start, end)
	if !ok {
		return nil, false
	}
	dates, err := s.cal.Dates(startDate, endDate)
	if err != nil {
		s.writeCalendarError(w, err)
		return nil, false
	}
	return dates, true
}

func (s *Server) parseRange(w http.ResponseWriter, start, end string) (time.Time, time.Time, bool) {
	startDate, err := parseDate(start)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeMalformedDate, err.Error())
		return time.Time{}, time.Time{}, false
	}
	endDate, err := parseDate(end)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeMalformedDate, err.Error())
		return time.Time{}, time.Time{}, false
	}
	return startDate, endDate, true
}

// writeCalendarError maps lookup-core errors onto error codes. These errors
// are deterministic for a given input, so they are surfaced, never retried.
func (s *Server) writeCalendarError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chinacal.ErrOutOfRange):
		writeError(w, http.StatusBadRequest, codeOutOfRange, err.Error())
	case errors.Is(err, chinacal.ErrInvalidRange):
		writeError(w, http.StatusBadRequest, codeInvalidRange, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
	}
}

// flagHandler serves the per-date boolean endpoints: a results array with
// one {date, <key>: bool} object per requested date.
func (s *Server) flagHandler(key string, pred func(time.Time) (bool, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		dates, ok := s.collectDates(w, r.URL.Query())
		if !ok {
			return
		}
		results := make([]map[string]any, 0, len(dates))
		for _, d := range dates {
			v, err := pred(d)
			if err != nil {
				s.writeCalendarError(w, err)
				return
			}
			results = append(results, map[string]any{
				"date": d.Format(chinacal.DateLayout),
				key:    v,
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{"results": results})
	}
}

// rangeListHandler serves the ordered-date-list endpoints. When
// includeWeekendsParam is set, include_weekends=false filters Saturday and
// Sunday dates out of the output list (default true, no filter).
func (s *Server) rangeListHandler(key string, query func(start, end time.Time) ([]time.Time, error), includeWeekendsParam bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		q := r.URL.Query()
		start, end := q.Get("start"), q.Get("end")
		if start == "" || end == "" {
			writeError(w, http.StatusBadRequest, codeBadRequest,
				"'start' and 'end' query parameters are required for this endpoint")
			return
		}
		startDate, endDate, ok := s.parseRange(w, start, end)
		if !ok {
			return
		}
		includeWeekends := true
		if includeWeekendsParam {
			var err error
			includeWeekends, err = parseBool(q.Get("include_weekends"), true)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
				return
			}
		}
		days, err := query(startDate, endDate)
		if err != nil {
			s.writeCalendarError(w, err)
			return
		}
		out := make([]string, 0, len(days))
		for _, d := range days {
			if !includeWeekends {
				if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
					continue
				}
			}
			out = append(out, d.Format(chinacal.DateLayout))
		}
		writeJSON(w, http.StatusOK, map[string]any{key: out})
	}
}

func (s *Server) handleHolidayDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	dates, ok := s.collectDates(w, r.URL.Query())
	if !ok {
		return
	}
	results := make([]map[string]any, 0, len(dates))
	for _, d := range dates {
		onHoliday, name, err := s.cal.HolidayDetail(d)
		if err != nil {
			s.writeCalendarError(w, err)
			return
		}
		var holidayName any
		if name != "" {
			holidayName = name.Name()
		}
		results = append(results, map[string]any{
			"date":         d.Format(chinacal.DateLayout),
			"is_holiday":   onHoliday,
			"holiday_name": holidayName,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (s *Server) handleDateType(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	checkers := map[string]func(time.Time) (bool, error){
		"holiday":               s.cal.IsHoliday,
		"workday":               s.cal.IsWorkday,
		"in-lieu":               s.cal.IsInLieu,
		"interbank-trading-day": s.cal.IsInterbankTradingDay,
		"a-share-trading-day":   s.cal.IsAShareTradingDay,
	}

	q := r.URL.Query()
	dateValue := q.Get("date")
	if dateValue == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "'date' query parameter is required for this endpoint")
		return
	}
	typeValue := q.Get("type")
	if typeValue == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "'type' query parameter is required for this endpoint")
		return
	}
	checker, ok := checkers[typeValue]
	if !ok {
		writeError(w, http.StatusBadRequest, codeBadRequest,
			fmt.Sprintf("unknown type %q; supported: a-share-trading-day, holiday, in-lieu, interbank-trading-day, workday", typeValue))
		return
	}
	d, err := parseDate(dateValue)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeMalformedDate, err.Error())
		return
	}
	result, err := checker(d)
	if err != nil {
		s.writeCalendarError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":   d.Format(chinacal.DateLayout),
		"type":   typeValue,
		"result": result,
	})
}
