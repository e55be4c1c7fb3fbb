package world

import (
	"fmt"
	"testing"
)

func TestRecordRequest_CapsAtHundredNewestFirst(t *testing.T) {
	w := testWorld(t)

	for i := 1; i <= 105; i++ {
		err := w.RecordRequest(RequestLogEntry{
			Method:     "GET",
			Path:       fmt.Sprintf("/req/%d", i),
			StatusCode: 200,
		})
		if err != nil {
			t.Fatalf("RecordRequest #%d: %v", i, err)
		}
	}

	logs, err := w.RecentLogs(0)
	if err != nil {
		t.Fatalf("RecentLogs: %v", err)
	}
	if len(logs) != MaxRequestLogs {
		t.Fatalf("stored %d entries, want %d", len(logs), MaxRequestLogs)
	}

	// Newest first: entry 105 at the head, entry 6 at the tail
	// (1..5 were evicted).
	if logs[0].Path != "/req/105" {
		t.Errorf("head = %q, want /req/105", logs[0].Path)
	}
	if logs[len(logs)-1].Path != "/req/6" {
		t.Errorf("tail = %q, want /req/6", logs[len(logs)-1].Path)
	}
}

func TestRecordRequest_NormalisesOptionalFields(t *testing.T) {
	w := testWorld(t)

	if err := w.RecordRequest(RequestLogEntry{Method: "GET", Path: "/", StatusCode: 200}); err != nil {
		t.Fatalf("RecordRequest: %v", err)
	}

	logs, err := w.RecentLogs(1)
	if err != nil {
		t.Fatalf("RecentLogs: %v", err)
	}
	entry := logs[0]

	if entry.Query == nil || entry.Headers == nil || entry.Cookies == nil ||
		entry.QueryParams == nil || entry.PathParams == nil {
		t.Error("optional maps should default to empty, not nil")
	}
	if entry.Timestamp.IsZero() {
		t.Error("timestamp should be stamped when missing")
	}
}

func TestRecentLogs_SummaryAndDetailedViews(t *testing.T) {
	w := testWorld(t)

	for i := 1; i <= 20; i++ {
		if err := w.RecordRequest(RequestLogEntry{Method: "GET", Path: fmt.Sprintf("/n/%d", i), StatusCode: 200}); err != nil {
			t.Fatalf("RecordRequest: %v", err)
		}
	}

	summary, err := w.RecentLogs(SummaryLogLimit)
	if err != nil {
		t.Fatalf("RecentLogs(summary): %v", err)
	}
	if len(summary) != 5 {
		t.Errorf("summary view = %d entries, want 5", len(summary))
	}

	detailed, err := w.RecentLogs(DetailedLogLimit)
	if err != nil {
		t.Fatalf("RecentLogs(detailed): %v", err)
	}
	if len(detailed) != 10 {
		t.Errorf("detailed view = %d entries, want 10", len(detailed))
	}

	// Both views are prefixes of the same newest-first list.
	for i := range summary {
		if summary[i].Path != detailed[i].Path {
			t.Errorf("views diverge at %d: %q vs %q", i, summary[i].Path, detailed[i].Path)
		}
	}
}

func TestRecentLogs_LimitBeyondStored(t *testing.T) {
	w := testWorld(t)

	if err := w.RecordRequest(RequestLogEntry{Method: "GET", Path: "/only", StatusCode: 200}); err != nil {
		t.Fatalf("RecordRequest: %v", err)
	}

	logs, err := w.RecentLogs(10)
	if err != nil {
		t.Fatalf("RecentLogs: %v", err)
	}
	if len(logs) != 1 {
		t.Errorf("got %d entries, want 1", len(logs))
	}
}
