package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mkarlsen/GameShelf_Go/internal/database"
)

// startTestDatabase spins up a throwaway Postgres container, applies the
// migrations, and returns a connected pool. Tests are skipped when Docker
// is unavailable or when running in short mode.
func startTestDatabase(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	var pgContainer *postgres.PostgresContainer
	var err error

	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("Skipping integration test due to panic (likely Docker issue): %v", r)
			}
		}()
		pgContainer, err = postgres.Run(ctx,
			"postgres:15-alpine",
			postgres.WithDatabase("testdb"),
			postgres.WithUsername("testuser"),
			postgres.WithPassword("testpass"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(5*time.Second)),
		)
	}()

	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	if pgContainer == nil {
		t.Skip("postgres container did not start")
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := database.NewPool(connStr)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := applyMigrations(ctx, pool, "../../../migrations"); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}

	return pool
}

// applyMigrations runs every up migration in lexical order, stripping
// goose markers so plain Exec can run the files
func applyMigrations(ctx context.Context, pool *pgxpool.Pool, migrationsDir string) error {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to read migrations dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, filepath.Join(migrationsDir, entry.Name()))
		}
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		sql := strings.Replace(string(content), "-- +goose Up", "", 1)
		if downIdx := strings.Index(sql, "-- +goose Down"); downIdx != -1 {
			sql = sql[:downIdx]
		}
		sql = strings.TrimSpace(sql)

		if _, err := pool.Exec(ctx, sql); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", file, err)
		}
	}
	return nil
}

// seedUser inserts a user row and returns its id
func seedUser(ctx context.Context, t *testing.T, pool *pgxpool.Pool, username string) string {
	t.Helper()
	var id string
	err := pool.QueryRow(ctx,
		`INSERT INTO users (username) VALUES ($1) RETURNING user_id`, username).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed user %s: %v", username, err)
	}
	return id
}

// seedGame inserts a game row and returns its id
func seedGame(ctx context.Context, t *testing.T, pool *pgxpool.Pool, title string) string {
	t.Helper()
	var id string
	err := pool.QueryRow(ctx,
		`INSERT INTO games (title) VALUES ($1) RETURNING game_id`, title).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed game %s: %v", title, err)
	}
	return id
}

// seedAddition inserts a catalog addition the way the metadata importer
// would and returns its id
func seedAddition(ctx context.Context, t *testing.T, pool *pgxpool.Pool, gameID, name, additionType string, isComplete bool, weight float64, required bool) string {
	t.Helper()
	var id string
	err := pool.QueryRow(ctx, `
		INSERT INTO game_additions
			(game_id, addition_name, addition_type, is_complete_edition, weight, required_for_full)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING addition_id`,
		gameID, name, additionType, isComplete, weight, required).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed addition %s: %v", name, err)
	}
	return id
}
