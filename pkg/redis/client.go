package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewClient connects to addr, which may be a host:port or a redis:// URL
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	url := addr
	if !strings.Contains(url, "://") {
		url = fmt.Sprintf("redis://%s", addr)
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		// Fallback to simple connection
		opt = &redis.Options{
			Addr: addr,
		}
	}
	if password != "" {
		opt.Password = password
	}
	if db != 0 {
		opt.DB = db
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}
