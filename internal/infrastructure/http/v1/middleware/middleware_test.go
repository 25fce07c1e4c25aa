package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"offerte/internal/core/apperror"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Trace())
	r.Use(ErrorHandler())
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/missing", func(c *gin.Context) {
		_ = c.Error(apperror.NewNotFound("draft", "42"))
		c.Abort()
	})
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("kaput"))
		c.Abort()
	})
	return r
}

func TestTraceGeneratesIDs(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	r.ServeHTTP(w, req)

	if w.Header().Get(HeaderRequestID) == "" {
		t.Error("expected a generated request ID header")
	}
	if w.Header().Get(HeaderTraceID) == "" {
		t.Error("expected a generated trace ID header")
	}
}

func TestTraceEchoesCallerIDs(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	req.Header.Set(HeaderTraceID, "trace-456")
	r.ServeHTTP(w, req)

	if got := w.Header().Get(HeaderRequestID); got != "req-123" {
		t.Errorf("expected request ID to be echoed, got %q", got)
	}
	if got := w.Header().Get(HeaderTraceID); got != "trace-456" {
		t.Errorf("expected trace ID to be echoed, got %q", got)
	}
}

func TestErrorHandlerAppError(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Code != apperror.CodeNotFound {
		t.Errorf("expected code %s, got %s", apperror.CodeNotFound, body.Code)
	}
}

func TestErrorHandlerUnknownError(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(HeaderRequestID, "req-789")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details struct {
			RequestID string `json:"request_id"`
			TraceID   string `json:"trace_id"`
		} `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Code != apperror.CodeInternal {
		t.Errorf("expected code %s, got %s", apperror.CodeInternal, body.Code)
	}
	if body.Message != "Internal server error" {
		t.Errorf("unexpected message %q", body.Message)
	}
	if body.Details.RequestID != "req-789" {
		t.Errorf("expected the caller's request ID in details, got %q", body.Details.RequestID)
	}
	if body.Details.TraceID == "" {
		t.Error("expected a trace ID in details")
	}
}
