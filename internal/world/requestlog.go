package world

import "time"

// Request log limits. The log is a capped, newest-first list maintained
// by truncation: entries are prepended and the tail dropped past the cap.
const (
	// MaxRequestLogs is the hard cap on stored entries.
	MaxRequestLogs = 100

	// SummaryLogLimit is the default size of the summary view
	// (world-state endpoint).
	SummaryLogLimit = 5

	// DetailedLogLimit is the default size of the detailed view
	// (/logs/detailed endpoint).
	DetailedLogLimit = 10
)

// RecordRequest prepends a normalised entry to the request log and
// truncates to the most recent MaxRequestLogs entries. Missing optional
// maps default to empty so the stored shape is uniform.
func (w *World) RecordRequest(entry RequestLogEntry) error {
	doc, err := w.store.Load()
	if err != nil {
		return err
	}

	normalizeLogEntry(&entry)

	doc.RequestLogs = append([]RequestLogEntry{entry}, doc.RequestLogs...)
	if len(doc.RequestLogs) > MaxRequestLogs {
		doc.RequestLogs = doc.RequestLogs[:MaxRequestLogs]
	}

	return w.store.Save(doc)
}

// RecentLogs returns the first limit entries of the log, newest-first.
// The summary and detailed views differ only in the limit the caller
// chooses, not in the stored shape.
func (w *World) RecentLogs(limit int) ([]RequestLogEntry, error) {
	doc, err := w.store.Load()
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > len(doc.RequestLogs) {
		limit = len(doc.RequestLogs)
	}
	return doc.RequestLogs[:limit], nil
}

// normalizeLogEntry fills defaults for optional fields.
func normalizeLogEntry(entry *RequestLogEntry) {
	if entry.Query == nil {
		entry.Query = map[string]string{}
	}
	if entry.Headers == nil {
		entry.Headers = map[string]string{}
	}
	if entry.Cookies == nil {
		entry.Cookies = map[string]string{}
	}
	if entry.QueryParams == nil {
		entry.QueryParams = map[string]string{}
	}
	if entry.PathParams == nil {
		entry.PathParams = map[string]string{}
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
}
