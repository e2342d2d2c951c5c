package history

import (
	"context"
	"sync"
	"time"

	"github.com/quixlabs/lead-capture/internal/core"
	"go.uber.org/zap"
)

// MemoryHistory is an in-memory implementation of the HistoryRepository
// interface
type MemoryHistory struct {
	entries     []*core.AnalysisEntry
	mu          sync.RWMutex
	logger      *zap.Logger
	retention   time.Duration
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewMemoryHistory creates a new in-memory history store
func NewMemoryHistory(retention time.Duration, cleanupFreq time.Duration, logger *zap.Logger) *MemoryHistory {
	store := &MemoryHistory{
		logger:      logger,
		retention:   retention,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	// Start background cleanup
	go store.startCleanupTask()

	return store
}

// Save appends one completed analysis
func (h *MemoryHistory) Save(ctx context.Context, entry *core.AnalysisEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, entry)
	return nil
}

// List returns the most recent analyses for a user, newest first
func (h *MemoryHistory) List(ctx context.Context, requestedBy string, limit int) ([]*core.AnalysisEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	results := make([]*core.AnalysisEntry, 0, limit)
	for i := len(h.entries) - 1; i >= 0 && len(results) < limit; i-- {
		if h.entries[i].RequestedBy == requestedBy {
			results = append(results, h.entries[i])
		}
	}
	return results, nil
}

// Cleanup removes entries older than the retention window
func (h *MemoryHistory) Cleanup(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	cutoff := time.Now().Add(-h.retention)
	kept := h.entries[:0]
	removed := 0

	for _, entry := range h.entries {
		if entry.CreatedAt.After(cutoff) {
			kept = append(kept, entry)
		} else {
			removed++
		}
	}
	h.entries = kept

	if removed > 0 {
		h.logger.Debug("Cleaned up expired history entries", zap.Int("removed_count", removed))
	}
	return nil
}

// startCleanupTask starts a background task to clean up expired entries
func (h *MemoryHistory) startCleanupTask() {
	ticker := time.NewTicker(h.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := h.Cleanup(context.Background()); err != nil {
				h.logger.Error("Failed to clean up history", zap.Error(err))
			}
		case <-h.stopCh:
			return
		}
	}
}

// Stop stops the background cleanup task
func (h *MemoryHistory) Stop() {
	close(h.stopCh)
}
