package state

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// stateTTL auto-expires stale conversations.
const stateTTL = 24 * time.Hour

// RedisManager keeps conversation state in Redis so it survives
// process restarts.
type RedisManager struct {
	client *redis.Client
}

func NewRedisManager(host, port string) (*RedisManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", host, port),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisManager{client: client}, nil
}

func stateKey(userID int64) string {
	return fmt.Sprintf("chat:%d:state", userID)
}

func (m *RedisManager) SetUserState(userID int64, state string) {
	m.client.Set(context.Background(), stateKey(userID), state, stateTTL)
}

// GetUserState falls back to None on any Redis error; the bot just
// re-prompts from the main menu.
func (m *RedisManager) GetUserState(userID int64) string {
	result := m.client.Get(context.Background(), stateKey(userID))
	if result.Err() != nil {
		return None
	}
	return result.Val()
}

func (m *RedisManager) ClearUserState(userID int64) {
	m.client.Del(context.Background(), stateKey(userID))
}

func (m *RedisManager) Close() error {
	return m.client.Close()
}
