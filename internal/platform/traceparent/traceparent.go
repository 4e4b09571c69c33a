// Package traceparent reads the W3C Trace Context request header.
// Both request ID assignment and log correlation key off the same parse.
package traceparent

import (
	"net/http"
	"strconv"
	"strings"
)

// Header is the request header carrying the trace context.
const Header = "traceparent"

const (
	traceIDLen = 32
	spanIDLen  = 16
)

// Parent is a parsed traceparent value: {version}-{trace-id}-{parent-id}-{flags}.
type Parent struct {
	TraceID string
	SpanID  string
	Sampled bool
}

// FromRequest parses the traceparent header of r.
func FromRequest(r *http.Request) (Parent, bool) {
	return Parse(r.Header.Get(Header))
}

// Parse accepts version 00 exactly and future versions with trailing fields.
// All-zero trace or span IDs and version ff are rejected.
func Parse(v string) (Parent, bool) {
	parts := strings.Split(v, "-")
	if len(parts) < 4 {
		return Parent{}, false
	}
	version, traceID, spanID, flags := parts[0], parts[1], parts[2], parts[3]
	if len(version) != 2 || !isHex(version) || strings.EqualFold(version, "ff") {
		return Parent{}, false
	}
	if version == "00" && len(parts) != 4 {
		return Parent{}, false
	}
	if len(traceID) != traceIDLen || !isHex(traceID) || allZero(traceID) {
		return Parent{}, false
	}
	if len(spanID) != spanIDLen || !isHex(spanID) || allZero(spanID) {
		return Parent{}, false
	}
	if len(flags) != 2 {
		return Parent{}, false
	}
	bits, err := strconv.ParseUint(flags, 16, 8)
	if err != nil {
		return Parent{}, false
	}
	return Parent{
		TraceID: strings.ToLower(traceID),
		SpanID:  strings.ToLower(spanID),
		Sampled: bits&0x01 == 0x01,
	}, true
}

// isHex reports whether s is non-empty and made only of hex digits.
func isHex(s string) bool {
	if s == "" {
		return false
	}
	for i := range len(s) {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

func allZero(s string) bool {
	return strings.Trim(s, "0") == ""
}
