package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"

	"github.com/maxviazov/federation-analytics/internal/model"
	"github.com/maxviazov/federation-analytics/internal/repository"
	"github.com/maxviazov/federation-analytics/internal/repository/contract"
)

var (
	db     *sql.DB
	pool   *pgxpool.Pool
	dsn    string
	skippy bool
)

func TestMain(m *testing.M) {
	if os.Getenv("CONTRACT_TESTS") != "1" {
		// allow skipping contract tests unless explicitly enabled
		skippy = true
		os.Exit(m.Run())
	}

	dsn = buildDSNFromEnv()
	if dsn == "" {
		fmt.Println("[contract] DATABASE_URL or APP_POSTGRES_* env not set; skipping")
		skippy = true
		os.Exit(m.Run())
	}

	var err error
	db, err = sql.Open("pgx", dsn)
	if err != nil {
		fmt.Println("[contract] sql open error:", err)
		os.Exit(1)
	}
	if err := db.Ping(); err != nil {
		fmt.Println("[contract] db ping error:", err)
		os.Exit(1)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		fmt.Println("[contract] goose dialect error:", err)
		os.Exit(1)
	}
	migrationsDir := filepath.Clean(filepath.Join("..", "..", "..", "migrations", "goose_sql"))
	if err := goose.Up(db, migrationsDir); err != nil {
		fmt.Println("[contract] goose up error:", err)
		os.Exit(1)
	}

	pool, err = pgxpool.New(context.Background(), dsn)
	if err != nil {
		fmt.Println("[contract] pgxpool new error:", err)
		os.Exit(1)
	}

	code := m.Run()
	pool.Close()
	db.Close()
	os.Exit(code)
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
	user := firstNonEmpty(os.Getenv("APP_POSTGRES_USER"), os.Getenv("POSTGRES_USER"))
	pass := firstNonEmpty(os.Getenv("APP_POSTGRES_PASSWORD"), os.Getenv("POSTGRES_PASSWORD"))
	host := firstNonEmpty(os.Getenv("APP_POSTGRES_HOST"), os.Getenv("POSTGRES_HOST"), "localhost")
	port := firstNonEmpty(os.Getenv("APP_POSTGRES_PORT"), os.Getenv("POSTGRES_PORT"), "5432")
	name := firstNonEmpty(os.Getenv("APP_POSTGRES_DB"), os.Getenv("POSTGRES_DB"))
	ssl := firstNonEmpty(os.Getenv("APP_POSTGRES_SSLMODE"), os.Getenv("POSTGRES_SSLMODE"), "disable")
	if user == "" || pass == "" || name == "" {
		return ""
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, pass, host, port, name, ssl)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncateAll(t *testing.T) {
	t.Helper()
	stmts := []string{
		"TRUNCATE TABLE athlete_memberships RESTART IDENTITY CASCADE",
		"TRUNCATE TABLE clubs RESTART IDENTITY CASCADE",
		"TRUNCATE TABLE registrations RESTART IDENTITY CASCADE",
		"TRUNCATE TABLE competitions RESTART IDENTITY CASCADE",
		"TRUNCATE TABLE users RESTART IDENTITY CASCADE",
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("truncate failed: %v", err)
		}
	}
}

// sqlSeeder writes fixtures through database/sql; the fetcher under test only reads.
type sqlSeeder struct{ db *sql.DB }

func (s sqlSeeder) insert(ctx context.Context, q string, args ...any) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, q, args...).Scan(&id)
	return id, err
}

func (s sqlSeeder) User(ctx context.Context, role model.Role, createdAt time.Time, lastActivity *time.Time) (int64, error) {
	return s.insert(ctx, `INSERT INTO users (role, created_at, last_activity_at) VALUES ($1, $2, $3) RETURNING id`,
		string(role), createdAt, lastActivity)
}

func (s sqlSeeder) Competition(ctx context.Context, status model.CompetitionStatus, fee decimal.Decimal, createdAt time.Time) (int64, error) {
	return s.insert(ctx, `INSERT INTO competitions (status, registration_fee, created_at) VALUES ($1, $2::NUMERIC, $3) RETURNING id`,
		string(status), fee.String(), createdAt)
}

func (s sqlSeeder) Registration(ctx context.Context, competitionID int64, category string, status model.PaymentStatus, createdAt time.Time) (int64, error) {
	return s.insert(ctx, `INSERT INTO registrations (competition_id, category, payment_status, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		competitionID, category, string(status), createdAt)
}

func (s sqlSeeder) Club(ctx context.Context, city string, createdAt time.Time) (int64, error) {
	var c any
	if city != "" {
		c = city
	}
	return s.insert(ctx, `INSERT INTO clubs (city, created_at) VALUES ($1, $2) RETURNING id`, c, createdAt)
}

func (s sqlSeeder) Membership(ctx context.Context, clubID int64) (int64, error) {
	return s.insert(ctx, `INSERT INTO athlete_memberships (club_id) VALUES ($1) RETURNING id`, clubID)
}

// Factories used by contract suites

func makeFetcher(t *testing.T) (repository.RecordFetcher, contract.Seeder, func()) {
	skipIfNeeded(t)
	truncateAll(t)
	return NewRecordFetcher(pool), sqlSeeder{db: db}, func() { truncateAll(t) }
}

func makePinger(t *testing.T) (repository.Pinger, func()) {
	skipIfNeeded(t)
	return NewPinger(pool), func() {}
}

func TestRecordFetcher_PostgresContract(t *testing.T) {
	contract.RunRecordFetcherContract(t, makeFetcher)
}

func TestPinger_PostgresContract(t *testing.T) {
	contract.RunPingerContract(t, makePinger)
}
