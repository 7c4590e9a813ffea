package repositories

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/movekenya/movekenya_backend/models"
)

// OTPWindow is how long an issued code stays valid.
const OTPWindow = 5 * time.Minute

// OTPLedger is the single source of truth for who is mid-authentication. One
// entry per email; a second issuance for the same email overwrites the first.
type OTPLedger interface {
	Put(ctx context.Context, email string, otp models.PendingOTP) error
	Get(ctx context.Context, email string) (*models.PendingOTP, error)
	Delete(ctx context.Context, email string) error
}

// MemoryLedger keeps pending codes in a process-local map. Expired entries
// are dropped lazily on read.
type MemoryLedger struct {
	mu      sync.RWMutex
	pending map[string]models.PendingOTP
}

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{pending: make(map[string]models.PendingOTP)}
}

func (l *MemoryLedger) Put(ctx context.Context, email string, otp models.PendingOTP) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending[email] = otp
	return nil
}

func (l *MemoryLedger) Get(ctx context.Context, email string) (*models.PendingOTP, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	otp, ok := l.pending[email]
	if !ok {
		return nil, ErrNoPending
	}
	if otp.Expired() {
		delete(l.pending, email)
		return nil, ErrNoPending
	}
	return &otp, nil
}

func (l *MemoryLedger) Delete(ctx context.Context, email string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.pending, email)
	return nil
}

// RedisLedger stores pending codes in Redis so a restart, or a second
// instance, does not lose in-flight logins. Expiry rides on the key TTL.
type RedisLedger struct {
	client *redis.Client
}

// NewRedisLedger creates a ledger backed by the given Redis client.
func NewRedisLedger(client *redis.Client) *RedisLedger {
	return &RedisLedger{client: client}
}

func otpKey(email string) string {
	return "otp:" + email
}

func (l *RedisLedger) Put(ctx context.Context, email string, otp models.PendingOTP) error {
	data, err := json.Marshal(otp)
	if err != nil {
		return err
	}
	ttl := time.Until(otp.ExpiresAt)
	if ttl <= 0 {
		ttl = OTPWindow
	}
	return l.client.Set(ctx, otpKey(email), data, ttl).Err()
}

func (l *RedisLedger) Get(ctx context.Context, email string) (*models.PendingOTP, error) {
	data, err := l.client.Get(ctx, otpKey(email)).Bytes()
	if err == redis.Nil {
		return nil, ErrNoPending
	}
	if err != nil {
		return nil, err
	}

	var otp models.PendingOTP
	if err := json.Unmarshal(data, &otp); err != nil {
		return nil, err
	}
	if otp.Expired() {
		l.client.Del(ctx, otpKey(email))
		return nil, ErrNoPending
	}
	return &otp, nil
}

func (l *RedisLedger) Delete(ctx context.Context, email string) error {
	return l.client.Del(ctx, otpKey(email)).Err()
}
