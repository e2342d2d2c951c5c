package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/quixlabs/lead-capture/internal/core"
	"go.uber.org/zap"
)

// SQLiteHistory is a SQLite implementation of the HistoryRepository interface
type SQLiteHistory struct {
	db          *sql.DB
	logger      *zap.Logger
	retention   time.Duration
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewSQLiteHistory creates a new SQLite history store
func NewSQLiteHistory(dbPath string, retention time.Duration, cleanupFreq time.Duration, logger *zap.Logger) (*SQLiteHistory, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Create table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS analysis_history (
			id TEXT PRIMARY KEY,
			email TEXT,
			requested_by TEXT,
			company_domain TEXT,
			linkedin_profile TEXT,
			cheat_sheet_bullets TEXT,
			created_at TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	// Index on created_at serves both List ordering and Cleanup
	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_created_at ON analysis_history(created_at)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	store := &SQLiteHistory{
		db:          db,
		logger:      logger,
		retention:   retention,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	// Start background cleanup
	go store.startCleanupTask()

	return store, nil
}

// Save appends one completed analysis
func (h *SQLiteHistory) Save(ctx context.Context, entry *core.AnalysisEntry) error {
	_, err := h.db.ExecContext(ctx, `
		INSERT INTO analysis_history
			(id, email, requested_by, company_domain, linkedin_profile, cheat_sheet_bullets, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Email, entry.RequestedBy, entry.CompanyDomain, entry.LinkedinProfile, entry.CheatSheetBullets, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}
	return nil
}

// List returns the most recent analyses for a user, newest first
func (h *SQLiteHistory) List(ctx context.Context, requestedBy string, limit int) ([]*core.AnalysisEntry, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT id, email, requested_by, company_domain, linkedin_profile, cheat_sheet_bullets, created_at
		FROM analysis_history
		WHERE requested_by = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, requestedBy, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []*core.AnalysisEntry
	for rows.Next() {
		var entry core.AnalysisEntry
		if err := rows.Scan(&entry.ID, &entry.Email, &entry.RequestedBy, &entry.CompanyDomain,
			&entry.LinkedinProfile, &entry.CheatSheetBullets, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}

// Cleanup removes entries older than the retention window
func (h *SQLiteHistory) Cleanup(ctx context.Context) error {
	cutoff := time.Now().Add(-h.retention)

	result, err := h.db.ExecContext(ctx, `
		DELETE FROM analysis_history WHERE created_at < ?
	`, cutoff)
	if err != nil {
		return fmt.Errorf("failed to clean up history: %w", err)
	}

	if removed, err := result.RowsAffected(); err == nil && removed > 0 {
		h.logger.Debug("Cleaned up expired history entries", zap.Int64("removed_count", removed))
	}
	return nil
}

// startCleanupTask starts a background task to clean up expired entries
func (h *SQLiteHistory) startCleanupTask() {
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

// Stop stops the background cleanup task and closes the database
func (h *SQLiteHistory) Stop() {
	close(h.stopCh)
	if err := h.db.Close(); err != nil {
		h.logger.Error("Failed to close SQLite database", zap.Error(err))
	}
}
