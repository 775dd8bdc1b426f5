package server

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/tradecal/chinacal"
	"go.uber.org/zap"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	ok, err := VerifyPassword("s3cret", hash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Fatalf("correct password rejected")
	}
	ok, err = VerifyPassword("wrong", hash)
	if err != nil {
		t.Fatalf("VerifyPassword wrong: %v", err)
	}
	if ok {
		t.Fatalf("wrong password accepted")
	}
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	if _, err := VerifyPassword("x", "not-a-hash"); err == nil {
		t.Fatalf("expected error for malformed hash")
	}
}

func TestAuthFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth")

	if err := CreateAuthFile(path, "admin", "s3cret"); err != nil {
		t.Fatalf("CreateAuthFile: %v", err)
	}
	auth, err := LoadAuthFile(path)
	if err != nil {
		t.Fatalf("LoadAuthFile: %v", err)
	}
	if auth == nil || auth.User != "admin" {
		t.Fatalf("auth = %+v", auth)
	}
	ok, err := VerifyPassword("s3cret", auth.hash)
	if err != nil || !ok {
		t.Fatalf("stored hash does not verify: ok=%v err=%v", ok, err)
	}
}

func TestLoadAuthFileMissingMeansOpen(t *testing.T) {
	auth, err := LoadAuthFile(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("LoadAuthFile: %v", err)
	}
	if auth != nil {
		t.Fatalf("missing file should disable auth, got %+v", auth)
	}
}

func TestAuthMiddleware(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth")
	if err := CreateAuthFile(path, "admin", "s3cret"); err != nil {
		t.Fatalf("CreateAuthFile: %v", err)
	}
	auth, err := LoadAuthFile(path)
	if err != nil {
		t.Fatalf("LoadAuthFile: %v", err)
	}
	h := New(chinacal.Default(), zap.NewNop(), auth)

	req := httptest.NewRequest(http.MethodGet, "/api/workdays?dates=2018-02-12", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no credentials: status = %d", rec.Code)
	}
	if rec.Header().Get("WWW-Authenticate") == "" {
		t.Fatalf("missing WWW-Authenticate header")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/workdays?dates=2018-02-12", nil)
	req.SetBasicAuth("admin", "wrong")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/workdays?dates=2018-02-12", nil)
	req.SetBasicAuth("admin", "s3cret")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("good credentials: status = %d body = %s", rec.Code, rec.Body.String())
	}

	// Health stays reachable without credentials.
	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("health: status = %d", rec.Code)
	}
}
