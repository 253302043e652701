package observability

import (
	"testing"
	"time"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/api/applications", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/api/applications", "GET", 200, 30*time.Millisecond)
	m.RecordError("/api/applications/:id", "GET", "NOT_FOUND")

	snap := m.Snapshot()
	key := "GET /api/applications|200"
	if snap.Requests[key] != 2 {
		t.Errorf("expected 2 requests, got %d", snap.Requests[key])
	}
	if snap.AvgLatencyMS[key] != 20 {
		t.Errorf("expected avg 20ms, got %d", snap.AvgLatencyMS[key])
	}
	if snap.Errors["GET /api/applications/:id|NOT_FOUND"] != 1 {
		t.Errorf("expected 1 error, got %v", snap.Errors)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	if snap := m.Snapshot(); len(snap.Requests) != 0 {
		t.Errorf("expected empty snapshot, got %v", snap.Requests)
	}
}
