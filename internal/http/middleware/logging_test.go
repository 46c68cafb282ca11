package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })
	log.Logger = zerolog.New(&buf)
	return &buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var m map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &m); err != nil {
		t.Fatalf("bad log line %q: %v", lines[len(lines)-1], err)
	}
	return m
}

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	var seen string
	r.GET("/x", func(c *gin.Context) { seen = RequestIDFrom(c); c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if seen == "" || w.Header().Get("X-Request-ID") != seen {
		t.Fatalf("generated id not echoed: ctx=%q hdr=%q", seen, w.Header().Get("X-Request-ID"))
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "abc")
	r.ServeHTTP(w, req)
	if seen != "abc" || w.Header().Get("X-Request-ID") != "abc" {
		t.Fatalf("inbound id not reused: %q", seen)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("a", maxRequestIDLen+1))
	r.ServeHTTP(w, req)
	if len(seen) > maxRequestIDLen {
		t.Fatalf("oversized id accepted")
	}
}

func TestRecovery_ReturnsJSON500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_ = captureLog(t)
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set("X-Request-ID", "rid-1")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body["code"] != "internal_error" || body["request_id"] != "rid-1" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestRecovery_AfterWriteOnlySetsStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_ = captureLog(t)
	r := gin.New()
	r.Use(Recovery())
	r.GET("/half", func(c *gin.Context) {
		c.String(http.StatusOK, "partial")
		panic("late")
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/half", nil))
	if !strings.HasPrefix(w.Body.String(), "partial") {
		t.Fatalf("body rewritten: %q", w.Body.String())
	}
}

func TestLoggerFrom_FallbackOutsideRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if LoggerFrom(c) == nil {
		t.Fatal("expected fallback logger")
	}
}

func TestRedact(t *testing.T) {
	in := "sid=123e4567-e89b-12d3-a456-426614174000&u=gas-user-abc1234&m=a.b@example.com&p=+66 812 345 678"
	out := Redact(in)
	for _, leak := range []string{"123e4567", "gas-user-abc1234", "example.com"} {
		if strings.Contains(out, leak) {
			t.Fatalf("leaked %q in %q", leak, out)
		}
	}
	if !strings.Contains(out, "[REDACTED:user]") || !strings.Contains(out, "[REDACTED:id]") {
		t.Fatalf("missing markers: %q", out)
	}
	if Redact("") != "" {
		t.Fatal("empty should stay empty")
	}
}

func TestRedactingLogger_ScopesLoggerAndMasks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLog(t)

	r := gin.New()
	r.Use(RequestID(), RedactingLogger(RedactOptions{MaskHeaders: []string{"X-Api-Key"}}))
	r.GET("/sessions/:id/result", func(c *gin.Context) {
		LoggerFrom(c).Info().Msg("inside")
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sessions/s-1/result?email=a@b.co", nil)
	req.Header.Set("X-Request-ID", "rid-9")
	req.Header.Set("X-Api-Key", "secret")
	req.Header.Set("Authorization", "Bearer t")
	r.ServeHTTP(w, req)

	out := buf.String()
	if strings.Contains(out, "secret") || strings.Contains(out, "Bearer t") || strings.Contains(out, "a@b.co") {
		t.Fatalf("sensitive data leaked: %s", out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 log lines, got %d: %s", len(lines), out)
	}
	var inner map[string]any
	_ = json.Unmarshal([]byte(lines[0]), &inner)
	if inner["session_id"] != "s-1" || inner["request_id"] != "rid-9" {
		t.Fatalf("scoped logger missing fields: %v", inner)
	}

	m := lastLine(t, buf)
	if m["level"] != "warn" || m["path"] != "/sessions/:id/result" {
		t.Fatalf("unexpected access line: %v", m)
	}
	if int(m["status"].(float64)) != http.StatusNotFound {
		t.Fatalf("status not logged: %v", m)
	}
}

func TestRedactingLogger_Levels(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := map[int]string{http.StatusOK: "info", http.StatusBadRequest: "warn", http.StatusBadGateway: "error"}
	for status, want := range cases {
		buf := captureLog(t)
		r := gin.New()
		r.Use(RedactingLogger(RedactOptions{}))
		st := status
		r.GET("/s", func(c *gin.Context) { c.Status(st) })
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/s", nil))
		if got := lastLine(t, buf)["level"]; got != want {
			t.Fatalf("status %d: want level %s, got %v", status, want, got)
		}
	}
}
