package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const migrationsDir = "migrations"

// RunMigrations applies every .sql file under migrations/ in lexical
// order. Files are idempotent (CREATE TABLE IF NOT EXISTS), so reruns on
// startup are safe.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	if pool == nil {
		logger.Warn("no postgres pool available; skipping migrations")
		return nil
	}

	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.sql"))
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, path := range files {
		script, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", path, err)
		}
		logger.Info("applying migration", zap.String("file", filepath.Base(path)))
		if _, err := pool.Exec(ctx, string(script)); err != nil {
			return fmt.Errorf("apply migration %s: %w", path, err)
		}
	}

	logger.Info("migrations applied", zap.Int("count", len(files)))
	return nil
}
