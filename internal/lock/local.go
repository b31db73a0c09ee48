package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LocalLock is an in-process Locker for single instance deployments.
type LocalLock struct {
	mu     sync.Mutex
	leases map[string]lease
	now    func() time.Time
}

type lease struct {
	token   string
	expires time.Time
}

func NewLocalLock() *LocalLock {
	return &LocalLock{
		leases: make(map[string]lease),
		now:    time.Now,
	}
}

func (l *LocalLock) Lock(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if cur, held := l.leases[key]; held && now.Before(cur.expires) {
		return "", false, nil
	}

	token := uuid.NewString()
	l.leases[key] = lease{token: token, expires: now.Add(ttl)}

	return token, true, nil
}

func (l *LocalLock) Unlock(_ context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cur, held := l.leases[key]; held && cur.token == token {
		delete(l.leases, key)
	}

	return nil
}

func (l *LocalLock) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	clear(l.leases)
	return nil
}
