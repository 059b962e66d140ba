package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/maxviazov/dashboard-service/internal/model"
	"github.com/maxviazov/dashboard-service/internal/repository"
	"github.com/maxviazov/dashboard-service/internal/repository/contract"
)

var (
	pool   *pgxpool.Pool
	skippy bool
)

func TestMain(m *testing.M) {
	if os.Getenv("CONTRACT_TESTS") != "1" {
		// allow skipping contract tests unless explicitly enabled
		skippy = true
		os.Exit(m.Run())
	}

	dsn := buildDSNFromEnv()
	if dsn == "" {
		fmt.Println("[contract] DATABASE_URL or APP_POSTGRES_* env not set; skipping")
		skippy = true
		os.Exit(m.Run())
	}

	if err := migrateUp(dsn); err != nil {
		fmt.Println("[contract] migrate:", err)
		os.Exit(1)
	}

	var err error
	pool, err = pgxpool.New(context.Background(), dsn)
	if err != nil {
		fmt.Println("[contract] pgxpool new error:", err)
		os.Exit(1)
	}

	code := m.Run()
	pool.Close()
	os.Exit(code)
}

// migrateUp applies the goose migrations through database/sql and the pgx stdlib driver.
func migrateUp(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("sql open: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	migrationsDir := filepath.Clean(filepath.Join("..", "..", "..", "migrations", "goose_sql"))
	return goose.Up(db, migrationsDir)
}

func skipIfNeeded(t *testing.T) {
	if skippy {
		t.Skip("contract tests skipped; set CONTRACT_TESTS=1 and provide DB env")
	}
}

func buildDSNFromEnv() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}
	user := firstNonEmpty(os.Getenv("APP_POSTGRES_USER"), os.Getenv("POSTGRES_USER"), os.Getenv("DB_USER"))
	pass := firstNonEmpty(os.Getenv("APP_POSTGRES_PASSWORD"), os.Getenv("POSTGRES_PASSWORD"), os.Getenv("DB_PASSWORD"))
	host := firstNonEmpty(os.Getenv("APP_POSTGRES_HOST"), os.Getenv("POSTGRES_HOST"), "localhost")
	port := firstNonEmpty(os.Getenv("APP_POSTGRES_PORT"), os.Getenv("POSTGRES_PORT"), "5432")
	db := firstNonEmpty(os.Getenv("APP_POSTGRES_DB"), os.Getenv("POSTGRES_DB"), os.Getenv("DB_NAME"))
	ssl := firstNonEmpty(os.Getenv("APP_POSTGRES_SSLMODE"), os.Getenv("POSTGRES_SSLMODE"), "disable")
	if user == "" || pass == "" || db == "" {
		return ""
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, pass, host, port, db, ssl)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncateAll(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	const stmt = "TRUNCATE TABLE activities, sessions, comments, posts, users RESTART IDENTITY CASCADE"
	if _, err := db.Exec(context.Background(), stmt); err != nil {
		t.Fatalf("truncate failed: %v", err)
	}
}

func seedActivities(db *pgxpool.Pool) contract.SeedActivities {
	return func(ctx context.Context, rows []model.Activity) error {
		for _, a := range rows {
			if _, err := db.Exec(ctx,
				`INSERT INTO activities (id, user_id, action, created_at) VALUES ($1, $2, $3, $4)`,
				a.ID, a.UserID, a.Action, a.CreatedAt,
			); err != nil {
				return err
			}
		}
		return nil
	}
}

func seedCounts(db *pgxpool.Pool) contract.SeedCounts {
	return func(ctx context.Context, users, posts, comments, sessions int) error {
		var userID, postID int64
		for i := 0; i < users; i++ {
			if err := db.QueryRow(ctx, `INSERT INTO users (email) VALUES ($1) RETURNING id`,
				fmt.Sprintf("user%d@example.com", i)).Scan(&userID); err != nil {
				return err
			}
		}
		for i := 0; i < posts; i++ {
			if err := db.QueryRow(ctx, `INSERT INTO posts (user_id, title) VALUES ($1, $2) RETURNING id`,
				userID, fmt.Sprintf("post %d", i)).Scan(&postID); err != nil {
				return err
			}
		}
		for i := 0; i < comments; i++ {
			if _, err := db.Exec(ctx, `INSERT INTO comments (post_id, user_id, body) VALUES ($1, $2, $3)`,
				postID, userID, fmt.Sprintf("comment %d", i)); err != nil {
				return err
			}
		}
		for i := 0; i < sessions; i++ {
			if _, err := db.Exec(ctx, `INSERT INTO sessions (user_id) VALUES ($1)`, userID); err != nil {
				return err
			}
		}
		return nil
	}
}

// Factories are parameterised by pool so the container run can reuse them.

func activityFactory(db func() *pgxpool.Pool, skip func(*testing.T)) contract.ActivityFactory {
	return func(t *testing.T) (repository.ActivityRepository, contract.SeedActivities, func()) {
		skip(t)
		truncateAll(t, db())
		return NewActivityRepository(NewConnPool(db())), seedActivities(db()), func() { truncateAll(t, db()) }
	}
}

func statsFactory(db func() *pgxpool.Pool, skip func(*testing.T)) contract.StatsFactory {
	return func(t *testing.T) (repository.StatsRepository, contract.SeedCounts, func()) {
		skip(t)
		truncateAll(t, db())
		return NewStatsRepository(NewConnPool(db())), seedCounts(db()), func() { truncateAll(t, db()) }
	}
}

func pingerFactory(db func() *pgxpool.Pool, skip func(*testing.T)) contract.PingerFactory {
	return func(t *testing.T) (repository.Pinger, func()) {
		skip(t)
		return NewPinger(db()), func() {}
	}
}

func envPool() *pgxpool.Pool { return pool }

// Wire the contract suites to Postgres factories

func TestActivityRepository_PostgresContract(t *testing.T) {
	contract.RunActivityRepositoryContract(t, activityFactory(envPool, skipIfNeeded))
}

func TestStatsRepository_PostgresContract(t *testing.T) {
	contract.RunStatsRepositoryContract(t, statsFactory(envPool, skipIfNeeded))
}

func TestPinger_PostgresContract(t *testing.T) {
	contract.RunPingerContract(t, pingerFactory(envPool, skipIfNeeded))
}
