package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// RunLock implements ports.RunLock with Redis SET NX. Each instance holds a
// random token so Release never deletes a lock a slower peer re-acquired after
// our TTL expired.
type RunLock struct {
	client *goredis.Client
	key    string
	token  string
}

// NewRunLock creates a Redis-backed run lock for the commit cycle.
func NewRunLock(client *goredis.Client) *RunLock {
	return &RunLock{
		client: client,
		key:    "commit:run_lock",
		token:  uuid.NewString(),
	}
}

// Acquire takes the lock if it is free. Returns false when another instance
// holds it.
func (l *RunLock) Acquire(ctx context.Context, ttl time.Duration) (bool, error) {
	result, err := l.client.SetArgs(ctx, l.key, l.token, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if err == goredis.Nil {
			// Key already exists — lock held elsewhere
			return false, nil
		}
		return false, fmt.Errorf("redis run lock acquire: %w", err)
	}
	return result == "OK", nil
}

// releaseScript deletes the lock only if the stored token is ours.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Release frees the lock if this instance still holds it.
func (l *RunLock) Release(ctx context.Context) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err(); err != nil {
		return fmt.Errorf("redis run lock release: %w", err)
	}
	return nil
}
