package usage

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Service orchestrates analysis-usage logic: the monthly token quota in
// Postgres and the per-user in-flight guard in redis.
type Service struct {
	store *Store
	rdb   *redis.Client
}

// NewService creates a Service backed by the given Store and redis client.
func NewService(store *Store, rdb *redis.Client) *Service {
	return &Service{store: store, rdb: rdb}
}

// UseToken deducts one token from the user's monthly allowance.
// If the user row does not exist yet it is initialised and the token is
// immediately consumed. Returns ErrInsufficientTokens when the quota for
// the current month is exhausted.
func (s *Service) UseToken(ctx context.Context, uid string) error {
	err := s.store.UseToken(ctx, uid)
	if err != ErrInsufficientTokens {
		return err
	}

	// Row may be missing: try to create it, then retry the deduction once.
	if initErr := s.store.EnsureUser(ctx, uid); initErr != nil {
		return initErr
	}
	return s.store.UseToken(ctx, uid)
}

// BeginAnalysis takes the per-user in-flight lock. The analyze endpoint
// calls this before touching the engine so a user cannot stack concurrent
// analyses; the lock self-expires in case EndAnalysis is never reached.
func (s *Service) BeginAnalysis(ctx context.Context, uid string) error {
	ok, err := s.rdb.SetNX(ctx, inFlightKey(uid), 1, inFlightTTL).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrAnalysisInFlight
	}
	return nil
}

// EndAnalysis releases the in-flight lock.
func (s *Service) EndAnalysis(ctx context.Context, uid string) {
	s.rdb.Del(ctx, inFlightKey(uid))
}

func inFlightKey(uid string) string {
	return "analysis:inflight:" + uid
}
