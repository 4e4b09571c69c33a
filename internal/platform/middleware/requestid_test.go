package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const sampleTraceparent = "00-3d23d071b5bfd6579171efce907685cb-08f067aa0ba902b7-01"

func serveRequestID(t *testing.T, headers map[string]string) (ctxID, headerID string) {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	h := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		ctxID = chimiddleware.GetReqID(r.Context())
	}))
	h.ServeHTTP(rec, req)
	return ctxID, rec.Header().Get(chimiddleware.RequestIDHeader)
}

func TestRequestIDGeneratesUUIDv4(t *testing.T) {
	ctxID, headerID := serveRequestID(t, nil)

	if headerID != ctxID {
		t.Fatalf("expected response header %q, got %q", ctxID, headerID)
	}
	parsed, err := uuid.Parse(ctxID)
	if err != nil {
		t.Fatalf("request ID %q is not a valid UUID: %v", ctxID, err)
	}
	if parsed.Version() != 4 {
		t.Fatalf("expected UUIDv4, got version %d", parsed.Version())
	}
}

func TestRequestIDInboundValidation(t *testing.T) {
	tests := []struct {
		name string
		id   string
		keep bool
	}{
		{"alphanumeric", "abc123XYZ", true},
		{"uuid", "550e8400-e29b-41d4-a716-446655440000", true},
		{"token punctuation", "req.42_a:b-c", true},
		{"max length", strings.Repeat("a", maxRequestIDLength), true},
		{"too long", strings.Repeat("a", maxRequestIDLength+1), false},
		{"space", "req 42", false},
		{"slash", "req/42", false},
		{"newline", "abc\ninjected", false},
		{"non-ascii", "réq", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctxID, headerID := serveRequestID(t, map[string]string{chimiddleware.RequestIDHeader: tt.id})
			if tt.keep && ctxID != tt.id {
				t.Fatalf("expected %q to be kept, got %q", tt.id, ctxID)
			}
			if !tt.keep {
				if ctxID == tt.id {
					t.Fatalf("expected %q to be replaced", tt.id)
				}
				if _, err := uuid.Parse(ctxID); err != nil {
					t.Fatalf("replacement %q is not a UUID: %v", ctxID, err)
				}
			}
			if headerID != ctxID {
				t.Fatalf("header %q does not match context %q", headerID, ctxID)
			}
		})
	}
}

func TestRequestIDFallsBackToTraceID(t *testing.T) {
	ctxID, headerID := serveRequestID(t, map[string]string{"traceparent": sampleTraceparent})

	if ctxID != "3d23d071b5bfd6579171efce907685cb" {
		t.Fatalf("expected trace ID as request ID, got %q", ctxID)
	}
	if headerID != ctxID {
		t.Fatalf("header %q does not match context %q", headerID, ctxID)
	}
}

func TestRequestIDPrefersInboundOverTraceID(t *testing.T) {
	ctxID, _ := serveRequestID(t, map[string]string{
		chimiddleware.RequestIDHeader: "client-42",
		"traceparent":                 sampleTraceparent,
	})

	if ctxID != "client-42" {
		t.Fatalf("expected inbound request ID, got %q", ctxID)
	}
}

func TestRequestIDIgnoresInvalidTraceparent(t *testing.T) {
	ctxID, _ := serveRequestID(t, map[string]string{"traceparent": "not-a-trace"})

	if _, err := uuid.Parse(ctxID); err != nil {
		t.Fatalf("expected generated UUID, got %q", ctxID)
	}
}

func TestRequestIDUniquePerRequest(t *testing.T) {
	seen := make(map[string]struct{})
	for range 20 {
		id, _ := serveRequestID(t, nil)
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate request ID %q", id)
		}
		seen[id] = struct{}{}
	}
}
