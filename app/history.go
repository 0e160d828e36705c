package app

import (
	"context"
	"sort"
	"sync"

	"dataview/domain/analysis"
	"dataview/internal"
	"dataview/internal/session"
	"dataview/ports"
)

// historyLimit bounds the cached list to the most recent entries.
const historyLimit = 50

// HistoryCache holds the authenticated user's prior analyses. History is a
// best-effort feature: fetch failures never surface to the user, they just
// leave the previous cache in place.
type HistoryCache struct {
	mu       sync.Mutex
	analyzer ports.AnalyzerPort
	logger   *internal.Logger
	entries  []analysis.HistoryEntry
}

// NewHistoryCache creates an empty cache.
func NewHistoryCache(analyzer ports.AnalyzerPort, logger *internal.Logger) *HistoryCache {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &HistoryCache{
		analyzer: analyzer,
		logger:   logger,
	}
}

// Refresh fetches the history list for the given session and returns the
// resulting entries. Without a token it returns empty without any network
// call (history is per-authenticated-user). On failure it returns the
// previously cached value silently.
func (h *HistoryCache) Refresh(ctx context.Context, sess session.Session) []analysis.HistoryEntry {
	if !sess.Authenticated() {
		h.mu.Lock()
		h.entries = nil
		h.mu.Unlock()
		return []analysis.HistoryEntry{}
	}

	fetched, err := h.analyzer.History(ctx, sess.Token)
	if err != nil {
		h.logger.Debug("[History] refresh failed, keeping cached list: %v", err)
		return h.Entries()
	}

	normalized := normalizeHistory(fetched)
	h.mu.Lock()
	h.entries = normalized
	h.mu.Unlock()
	return h.Entries()
}

// Entries returns a copy of the cached list, most recent first.
func (h *HistoryCache) Entries() []analysis.HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]analysis.HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Select activates a history entry by fetching its full record. An entry
// structurally lacks columns and preview data, so it is never coerced into
// a result directly.
func (h *HistoryCache) Select(ctx context.Context, entry analysis.HistoryEntry, sess session.Session) (*analysis.Result, error) {
	return h.analyzer.Result(ctx, entry.ID, sess.Token)
}

// normalizeHistory enforces the cache invariants: deduplicated by id, most
// recent first, bounded length.
func normalizeHistory(entries []analysis.HistoryEntry) []analysis.HistoryEntry {
	seen := make(map[string]bool, len(entries))
	out := make([]analysis.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if len(out) > historyLimit {
		out = out[:historyLimit]
	}
	return out
}
