// README: Usage module tests (lazy reset, quota boundary and in-flight lock).
package usage

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// TestUseTokenCrossMonthReset verifies that a user with 0 tokens left from
// a previous month is automatically reset and the request succeeds.
func TestUseTokenCrossMonthReset(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	// Seed user with 0 tokens from a past month.
	if _, err := db.Exec(ctx, "INSERT INTO analysis_usage VALUES ('user_reset', 0, '2000-01')"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.UseToken(ctx, "user_reset"); err != nil {
		t.Fatalf("UseToken after cross-month reset: %v", err)
	}

	var remaining int
	if err := db.QueryRow(ctx, "SELECT tokens_remaining FROM analysis_usage WHERE uid = 'user_reset'").Scan(&remaining); err != nil {
		t.Fatalf("query: %v", err)
	}
	if remaining != DefaultTokens-1 {
		t.Fatalf("expected %d tokens remaining, got %d", DefaultTokens-1, remaining)
	}
}

// TestUseTokenInsufficientCheck verifies that a user with 0 tokens in the
// current month is blocked.
func TestUseTokenInsufficientCheck(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	if _, err := db.Exec(ctx, "INSERT INTO analysis_usage (uid, tokens_remaining, last_reset_month) VALUES ('user_zero', 0, TO_CHAR(NOW(), 'YYYY-MM'))"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := svc.UseToken(ctx, "user_zero")
	if err != ErrInsufficientTokens {
		t.Fatalf("expected ErrInsufficientTokens, got %v", err)
	}
}

// TestUseTokenNewUser verifies that a user absent from the table is
// initialised on first call.
func TestUseTokenNewUser(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	if err := svc.UseToken(ctx, "user_new"); err != nil {
		t.Fatalf("UseToken for new user: %v", err)
	}

	var remaining int
	if err := db.QueryRow(ctx, "SELECT tokens_remaining FROM analysis_usage WHERE uid = 'user_new'").Scan(&remaining); err != nil {
		t.Fatalf("query: %v", err)
	}
	if remaining != DefaultTokens-1 {
		t.Fatalf("expected %d tokens remaining after first use, got %d", DefaultTokens-1, remaining)
	}
}

// TestInFlightLock verifies the second BeginAnalysis for the same uid is
// rejected until EndAnalysis runs.
func TestInFlightLock(t *testing.T) {
	rdb := setupTestRedis(t)
	svc := NewService(nil, rdb) // store not needed for the lock
	ctx := context.Background()

	if err := svc.BeginAnalysis(ctx, "user_lock"); err != nil {
		t.Fatalf("first BeginAnalysis: %v", err)
	}

	if err := svc.BeginAnalysis(ctx, "user_lock"); !errors.Is(err, ErrAnalysisInFlight) {
		t.Fatalf("expected ErrAnalysisInFlight, got %v", err)
	}

	// A different user is unaffected.
	if err := svc.BeginAnalysis(ctx, "user_other"); err != nil {
		t.Fatalf("BeginAnalysis for other user: %v", err)
	}

	svc.EndAnalysis(ctx, "user_lock")
	if err := svc.BeginAnalysis(ctx, "user_lock"); err != nil {
		t.Fatalf("BeginAnalysis after release: %v", err)
	}
}

// setupTestService creates a real postgres-backed Service.
// It skips the test when ESTATEMATCH_TEST_DSN is not set.
func setupTestService(t *testing.T) (*Service, *pgxpool.Pool) {
	t.Helper()

	dsn := os.Getenv("ESTATEMATCH_TEST_DSN")
	if dsn == "" {
		t.Skip("ESTATEMATCH_TEST_DSN not set; skipping DB-backed tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS analysis_usage (
			uid TEXT PRIMARY KEY,
			tokens_remaining INT NOT NULL DEFAULT 50,
			last_reset_month TEXT NOT NULL DEFAULT to_char(now(), 'YYYY-MM')
		)
	`); err != nil {
		t.Fatalf("ensure analysis_usage table: %v", err)
	}

	if _, err := db.Exec(ctx, "TRUNCATE TABLE analysis_usage"); err != nil {
		t.Fatalf("truncate analysis_usage: %v", err)
	}

	return NewService(NewStore(db), nil), db
}

// setupTestRedis connects to a real redis instance.
// It skips the test when ESTATEMATCH_TEST_REDIS is not set.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("ESTATEMATCH_TEST_REDIS")
	if addr == "" {
		t.Skip("ESTATEMATCH_TEST_REDIS not set; skipping redis-backed tests")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() {
		ctx := context.Background()
		rdb.Del(ctx, inFlightKey("user_lock"), inFlightKey("user_other"))
		_ = rdb.Close()
	})
	return rdb
}
