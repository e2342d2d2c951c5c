package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/quixlabs/lead-capture/internal/core"
	"go.uber.org/zap"
)

const mysqlTimeFormat = "2006-01-02 15:04:05"

// MySQLHistory is a MySQL implementation of the HistoryRepository interface
type MySQLHistory struct {
	db          *sql.DB
	logger      *zap.Logger
	retention   time.Duration
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewMySQLHistory creates a new MySQL history store
func NewMySQLHistory(dsn string, retention time.Duration, cleanupFreq time.Duration, logger *zap.Logger) (*MySQLHistory, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	// Create table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS analysis_history (
			id VARCHAR(36) PRIMARY KEY,
			email VARCHAR(255),
			requested_by VARCHAR(255),
			company_domain VARCHAR(255),
			linkedin_profile VARCHAR(512),
			cheat_sheet_bullets TEXT,
			created_at TIMESTAMP,
			INDEX idx_created_at (created_at),
			INDEX idx_requested_by (requested_by)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	store := &MySQLHistory{
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
func (h *MySQLHistory) Save(ctx context.Context, entry *core.AnalysisEntry) error {
	_, err := h.db.ExecContext(ctx, `
		INSERT INTO analysis_history
			(id, email, requested_by, company_domain, linkedin_profile, cheat_sheet_bullets, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Email, entry.RequestedBy, entry.CompanyDomain, entry.LinkedinProfile,
		entry.CheatSheetBullets, entry.CreatedAt.UTC().Format(mysqlTimeFormat))
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}
	return nil
}

// List returns the most recent analyses for a user, newest first
func (h *MySQLHistory) List(ctx context.Context, requestedBy string, limit int) ([]*core.AnalysisEntry, error) {
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
		var createdAt string
		if err := rows.Scan(&entry.ID, &entry.Email, &entry.RequestedBy, &entry.CompanyDomain,
			&entry.LinkedinProfile, &entry.CheatSheetBullets, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		if ts, err := time.Parse(mysqlTimeFormat, createdAt); err == nil {
			entry.CreatedAt = ts
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}

// Cleanup removes entries older than the retention window
func (h *MySQLHistory) Cleanup(ctx context.Context) error {
	cutoff := time.Now().Add(-h.retention).UTC().Format(mysqlTimeFormat)

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
func (h *MySQLHistory) startCleanupTask() {
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
func (h *MySQLHistory) Stop() {
	close(h.stopCh)
	if err := h.db.Close(); err != nil {
		h.logger.Error("Failed to close MySQL database", zap.Error(err))
	}
}
