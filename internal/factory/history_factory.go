package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/quixlabs/lead-capture/internal/adapters/history"
	"github.com/quixlabs/lead-capture/internal/config"
	"github.com/quixlabs/lead-capture/internal/core"
	"go.uber.org/zap"
)

// HistoryFactory creates history repositories based on configuration
type HistoryFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewHistoryFactory creates a new history factory
func NewHistoryFactory(cfg *config.Config, logger *zap.Logger) *HistoryFactory {
	return &HistoryFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateHistoryRepository creates a history repository based on the
// configuration. Returns nil when history is disabled.
func (f *HistoryFactory) CreateHistoryRepository() (core.HistoryRepository, error) {
	if !f.cfg.GetBool("history.enabled") {
		return nil, nil
	}

	retention, err := f.cfg.GetDuration("history.retention")
	if err != nil {
		return nil, fmt.Errorf("invalid history retention: %w", err)
	}
	cleanupFreq, err := f.cfg.GetDuration("history.cleanup_frequency")
	if err != nil {
		return nil, fmt.Errorf("invalid history cleanup frequency: %w", err)
	}

	historyType := f.cfg.GetString("history.type")
	switch historyType {
	case "memory":
		return history.NewMemoryHistory(retention, cleanupFreq, f.logger), nil
	case "sqlite":
		sqlitePath := f.cfg.GetString("history.sqlite_path")
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return history.NewSQLiteHistory(sqlitePath, retention, cleanupFreq, f.logger)
	case "mysql":
		mysqlDSN := f.cfg.GetString("history.mysql_dsn")
		return history.NewMySQLHistory(mysqlDSN, retention, cleanupFreq, f.logger)
	default:
		return nil, fmt.Errorf("unsupported history type: %s", historyType)
	}
}
