// Package server is the HTTP façade over the calendar: a pure translation
// layer that parses request parameters, invokes the lookup core and
// serializes results. It holds no state beyond the calendar reference.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/tradecal/chinacal"
	"go.uber.org/zap"
)

// Machine-readable error codes carried in error responses.
const (
	codeBadRequest    = "bad_request"
	codeMalformedDate = "malformed_date"
	codeOutOfRange    = "out_of_range"
	codeInvalidRange  = "invalid_range"
	codeNotFound      = "not_found"
	codeUnauthorized  = "unauthorized"
)

type Server struct {
	cal *chinacal.Calendar
	log *zap.Logger
}

// New builds the API handler. auth may be nil, in which case the service is
// open.
func New(cal *chinacal.Calendar, logger *zap.Logger, auth *Auth) http.Handler {
	s := &Server{cal: cal, log: logger}
	mux := http.NewServeMux()

	mux.HandleFunc("/api/health", s.handleHealth)

	mux.HandleFunc("/api/workdays", s.flagHandler("is_workday", cal.IsWorkday))
	mux.HandleFunc("/api/holidays", s.flagHandler("is_holiday", cal.IsHoliday))
	mux.HandleFunc("/api/in-lieu", s.flagHandler("is_in_lieu", cal.IsInLieu))
	mux.HandleFunc("/api/holiday/detail", s.handleHolidayDetail)
	mux.HandleFunc("/api/date/type", s.handleDateType)

	mux.HandleFunc("/api/workdays/range", s.rangeListHandler("workdays", cal.Workdays, true))
	mux.HandleFunc("/api/holidays/range", s.rangeListHandler("holidays", cal.Holidays, true))

	mux.HandleFunc("/api/interbank/trading-days", s.flagHandler("is_interbank_trading_day", cal.IsInterbankTradingDay))
	mux.HandleFunc("/api/a-share/trading-days", s.flagHandler("is_a_share_trading_day", cal.IsAShareTradingDay))
	mux.HandleFunc("/api/interbank/trading-days/list", s.rangeListHandler("interbank_trading_days", cal.InterbankTradingDays, false))
	mux.HandleFunc("/api/a-share/trading-days/list", s.rangeListHandler("a_share_trading_days", cal.AShareTradingDays, false))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	})

	var h http.Handler = mux
	if auth != nil {
		h = auth.middleware(h)
	}
	return s.logRequests(h)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": chinacal.Version,
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]any{"code": code, "error": msg})
}
