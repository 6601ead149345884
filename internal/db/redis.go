package db

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/worldforge/mapgen/internal/worldgen"
)

// Redis manages Redis connections
type Redis struct {
	client *redis.Client
}

// NewRedis creates a new Redis client
func NewRedis(addr string) (*Redis, error) {
	if addr == "" {
		return &Redis{}, nil
	}

	opts, err := redis.ParseURL(addr)
	if err != nil {
		// Try as plain address
		opts = &redis.Options{
			Addr: addr,
		}
	}

	client := redis.NewClient(opts)

	// Test connection
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	log.Println("Connected to Redis")
	return &Redis{client: client}, nil
}

// Close closes the Redis connection
func (r *Redis) Close() error {
	if r != nil && r.client != nil {
		return r.client.Close()
	}
	return nil
}

// Client returns the underlying Redis client
func (r *Redis) Client() *redis.Client {
	return r.client
}

// IsConnected returns true if Redis is connected
func (r *Redis) IsConnected() bool {
	return r.client != nil
}

func progressChannel(runID uuid.UUID) string {
	return "worldgen:progress:" + runID.String()
}

func cancelKey(runID uuid.UUID) string {
	return "worldgen:cancel:" + runID.String()
}

// runProgressEvent mirrors worldgen.ProgressEvent plus the run id, the
// wire shape carried over the pub/sub channel (spec.md §6.3's progress
// stream, stamped with a run id by this transport layer, not the core).
type runProgressEvent struct {
	RunID    uuid.UUID       `json:"run_id"`
	Phase    worldgen.Phase  `json:"phase"`
	Progress float64         `json:"progress"`
	Message  string          `json:"message"`
}

// PublishProgress publishes one progress event to any subscribed viewers
// of runID. A no-op when Redis isn't connected.
func (r *Redis) PublishProgress(ctx context.Context, runID uuid.UUID, evt worldgen.ProgressEvent) error {
	if !r.IsConnected() {
		return nil
	}
	data, err := json.Marshal(runProgressEvent{
		RunID:    runID,
		Phase:    evt.Phase,
		Progress: evt.Progress,
		Message:  evt.Message,
	})
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, progressChannel(runID), data).Err()
}

// SubscribeProgress returns a channel of raw JSON progress events for
// runID, closed when ctx is cancelled.
func (r *Redis) SubscribeProgress(ctx context.Context, runID uuid.UUID) <-chan []byte {
	out := make(chan []byte, 16)
	if !r.IsConnected() {
		close(out)
		return out
	}

	sub := r.client.Subscribe(ctx, progressChannel(runID))
	ch := sub.Channel()

	go func() {
		defer sub.Close()
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				out <- []byte(msg.Payload)
			}
		}
	}()
	return out
}

// SetCancelFlag marks runID as cancelled for an hour; IsCancelled reads
// the flag back. The run manager and solver do not poll it.
func (r *Redis) SetCancelFlag(ctx context.Context, runID uuid.UUID) error {
	if !r.IsConnected() {
		return nil
	}
	return r.client.Set(ctx, cancelKey(runID), "1", time.Hour).Err()
}

// IsCancelled reports whether runID's cancel flag has been set.
func (r *Redis) IsCancelled(ctx context.Context, runID uuid.UUID) bool {
	if !r.IsConnected() {
		return false
	}
	n, err := r.client.Exists(ctx, cancelKey(runID)).Result()
	return err == nil && n > 0
}
