package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataview/domain/analysis"
	"dataview/internal/errors"
	"dataview/internal/session"
)

func authedSession() session.Session {
	return session.Session{User: session.User{Email: "u@example.com"}, Token: "tok"}
}

func TestRefreshWithoutTokenSkipsNetwork(t *testing.T) {
	remote := &stubAnalyzer{
		entries: []analysis.HistoryEntry{{ID: "h1"}},
	}
	h := NewHistoryCache(remote, nil)

	entries := h.Refresh(context.Background(), session.Anonymous())
	assert.Empty(t, entries)

	remote.mu.Lock()
	calls := remote.historyCalls
	remote.mu.Unlock()
	assert.Equal(t, 0, calls, "anonymous refresh must not call the network")
}

func TestRefreshFailureKeepsCachedList(t *testing.T) {
	remote := &stubAnalyzer{
		entries: []analysis.HistoryEntry{
			{ID: "h1", Filename: "a.csv", CreatedAt: time.Now()},
		},
	}
	h := NewHistoryCache(remote, nil)

	first := h.Refresh(context.Background(), authedSession())
	require.Len(t, first, 1)

	remote.mu.Lock()
	remote.historyErr = errors.NetworkError("Could not reach the analysis service")
	remote.mu.Unlock()

	second := h.Refresh(context.Background(), authedSession())
	assert.Equal(t, first, second, "failure must silently return the previous cache")
}

func TestRefreshDeduplicatesAndOrdersByRecency(t *testing.T) {
	now := time.Now()
	remote := &stubAnalyzer{
		entries: []analysis.HistoryEntry{
			{ID: "old", Filename: "old.csv", CreatedAt: now.Add(-2 * time.Hour)},
			{ID: "new", Filename: "new.csv", CreatedAt: now},
			{ID: "old", Filename: "dup.csv", CreatedAt: now.Add(-1 * time.Hour)},
			{ID: "mid", Filename: "mid.csv", CreatedAt: now.Add(-1 * time.Hour)},
		},
	}
	h := NewHistoryCache(remote, nil)

	entries := h.Refresh(context.Background(), authedSession())
	require.Len(t, entries, 3)
	assert.Equal(t, "new", entries[0].ID)
	assert.Equal(t, "mid", entries[1].ID)
	assert.Equal(t, "old", entries[2].ID)
	assert.Equal(t, "old.csv", entries[2].Filename, "first occurrence wins on duplicate ids")
}

func TestRefreshBoundsTheCache(t *testing.T) {
	now := time.Now()
	var many []analysis.HistoryEntry
	for i := 0; i < historyLimit+20; i++ {
		many = append(many, analysis.HistoryEntry{
			ID:        fmt.Sprintf("h%03d", i),
			CreatedAt: now.Add(-time.Duration(i) * time.Minute),
		})
	}
	remote := &stubAnalyzer{entries: many}
	h := NewHistoryCache(remote, nil)

	entries := h.Refresh(context.Background(), authedSession())
	assert.Len(t, entries, historyLimit)
	assert.Equal(t, "h000", entries[0].ID, "most recent entries are kept")
}

func TestSelectFetchesFullRecordByID(t *testing.T) {
	full := &analysis.Result{
		ID:      "h1",
		Rows:    10,
		Cols:    3,
		Columns: []analysis.ColumnStat{{Column: "a", Kind: analysis.KindNumeric}},
	}
	remote := &stubAnalyzer{
		results: map[string]*analysis.Result{"h1": full},
	}
	h := NewHistoryCache(remote, nil)

	entry := analysis.HistoryEntry{ID: "h1", Filename: "a.csv", Rows: 10, Cols: 3}
	result, err := h.Select(context.Background(), entry, authedSession())
	require.NoError(t, err)

	// the activated result carries the fields an entry lacks
	assert.Equal(t, full, result)
	assert.NotEmpty(t, result.Columns)
}

func TestLogoutRefreshClearsCache(t *testing.T) {
	remote := &stubAnalyzer{
		entries: []analysis.HistoryEntry{{ID: "h1", CreatedAt: time.Now()}},
	}
	h := NewHistoryCache(remote, nil)

	require.Len(t, h.Refresh(context.Background(), authedSession()), 1)
	assert.Empty(t, h.Refresh(context.Background(), session.Anonymous()))
	assert.Empty(t, h.Entries())
}
