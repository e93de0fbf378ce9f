package payroll

import (
	"context"
	"strings"
	"sync"
	"time"

	payrollerrors "go-payslip/internal/payroll/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	GenerationLockPrefix = "payslip:generation:"
	generationLockTTL    = 2 * time.Minute
)

// Guard allows one active generation per company, employee and period.
type Guard interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

func GenerationKey(companyID, employeeName string, start, end time.Time) string {
	return GenerationLockPrefix + strings.Join([]string{
		companyID,
		strings.ToLower(strings.TrimSpace(employeeName)),
		start.Format(dateLayout),
		end.Format(dateLayout),
	}, ":")
}

type redisGuard struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisGuard shares the lock across API and consumer processes. The TTL
// bounds how long a crashed holder can block new generations.
func NewRedisGuard(rdb *redis.Client, ttl time.Duration) Guard {
	if ttl <= 0 {
		ttl = generationLockTTL
	}
	return &redisGuard{rdb: rdb, ttl: ttl}
}

func (g *redisGuard) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	ok, err := g.rdb.SetNX(ctx, key, token, g.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, payrollerrors.ErrGenerationInProgress
	}

	return func() {
		// only the holder may release; the lock may have expired and been retaken
		if v, err := g.rdb.Get(context.Background(), key).Result(); err == nil && v == token {
			g.rdb.Del(context.Background(), key)
		}
	}, nil
}

type localGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func NewLocalGuard() Guard {
	return &localGuard{active: make(map[string]struct{})}
}

func (g *localGuard) Acquire(_ context.Context, key string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.active[key]; busy {
		return nil, payrollerrors.ErrGenerationInProgress
	}
	g.active[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.active, key)
			g.mu.Unlock()
		})
	}, nil
}
