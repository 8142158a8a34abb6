package broadcast

import (
	"context"
	"errors"
	"fmt"
	"meetsync/internal/models"
	"meetsync/internal/providers"
	"meetsync/internal/structures"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// RedisRelay publishes notifications on a per-group Redis channel and feeds
// everything it receives back into the local Broadcaster, so every instance
// behind a load balancer reaches its own listeners. The publishing instance
// receives its own message through the subscription like any other.
type RedisRelay struct {
	client *redis.Client
	prefix string
	local  *LocalPublisher
	logger providers.Logger

	mu     sync.Mutex
	pubsub *redis.PubSub
	closed bool
}

func NewRedisClient(conf *structures.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         conf.Redis.Addr,
		Password:     conf.Redis.Password,
		DB:           conf.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", conf.Redis.Addr, err)
	}
	return client, nil
}

func NewRedisRelay(client *redis.Client, prefix string, local *LocalPublisher, logger providers.Logger) *RedisRelay {
	return &RedisRelay{
		client: client,
		prefix: prefix,
		local:  local,
		logger: logger,
	}
}

func (r *RedisRelay) channel(groupID string) string {
	return r.prefix + groupID
}

func (r *RedisRelay) groupFromChannel(channel string) (string, bool) {
	if !strings.HasPrefix(channel, r.prefix) {
		return "", false
	}
	groupID := strings.TrimPrefix(channel, r.prefix)
	return groupID, groupID != ""
}

func (r *RedisRelay) Publish(ctx context.Context, groupID string, env models.Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, r.channel(groupID), data).Err()
}

// Run blocks, relaying subscribed messages until ctx is done or Close is
// called. Run after Close returns nil without subscribing.
func (r *RedisRelay) Run(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	pubsub := r.client.PSubscribe(ctx, r.prefix+"*")
	r.pubsub = pubsub
	r.mu.Unlock()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("redis subscribe: %w", err)
	}
	r.logger.Infof(providers.TypeApp, "Relaying group notifications through redis channels %s*", r.prefix)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r.relay(msg.Channel, msg.Payload)
		}
	}
}

// relay hands a message from a group channel to the local listeners.
// Messages on foreign channels are dropped.
func (r *RedisRelay) relay(channel, payload string) bool {
	groupID, ok := r.groupFromChannel(channel)
	if !ok {
		return false
	}
	r.local.deliver(groupID, []byte(payload))
	return true
}

func (r *RedisRelay) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	pubsub := r.pubsub
	r.mu.Unlock()

	var errs []error
	if pubsub != nil {
		errs = append(errs, pubsub.Close())
	}
	errs = append(errs, r.client.Close())
	return errors.Join(errs...)
}

// NewPublisher returns the redis relay when redis is enabled, the local
// publisher otherwise.
func NewPublisher(conf *structures.Config, broadcaster *Broadcaster, metrics providers.MetricsProviderInterface, logger providers.Logger) (Publisher, error) {
	local := NewLocalPublisher(broadcaster, metrics, logger)
	if !conf.Redis.Enabled {
		return local, nil
	}
	client, err := NewRedisClient(conf)
	if err != nil {
		return nil, err
	}
	return NewRedisRelay(client, conf.Redis.Prefix, local, logger), nil
}
