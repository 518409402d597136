package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rowboatlabs/workflowkit/types"
)

// RedisWorkflowStore is a Redis-based implementation of WorkflowStore.
// Suitable for distributed deployments. Each variant is one JSON value.
type RedisWorkflowStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisWorkflowStore creates a new Redis-based workflow store.
func NewRedisWorkflowStore(config StoreConfig) (*RedisWorkflowStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Redis.Host, config.Redis.Port),
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
		PoolSize: config.Redis.PoolSize,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	keyPrefix := config.Redis.KeyPrefix
	if keyPrefix == "" {
		keyPrefix = "workflowkit:"
	}

	return &RedisWorkflowStore{
		client:    client,
		keyPrefix: keyPrefix + "workflow:",
	}, nil
}

// NewRedisWorkflowStoreWithClient wraps an existing client. Used by tests
// against an embedded server.
func NewRedisWorkflowStoreWithClient(client *redis.Client, keyPrefix string) *RedisWorkflowStore {
	if keyPrefix == "" {
		keyPrefix = "workflowkit:"
	}
	return &RedisWorkflowStore{
		client:    client,
		keyPrefix: keyPrefix + "workflow:",
	}
}

func (s *RedisWorkflowStore) key(projectID string, variant Variant) string {
	return s.keyPrefix + projectID + ":" + string(variant)
}

func (s *RedisWorkflowStore) set(ctx context.Context, projectID string, variant Variant, w types.Workflow) error {
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("failed to marshal workflow: %w", err)
	}
	return s.client.Set(ctx, s.key(projectID, variant), data, 0).Err()
}

func (s *RedisWorkflowStore) get(ctx context.Context, projectID string, variant Variant) (types.Workflow, error) {
	data, err := s.client.Get(ctx, s.key(projectID, variant)).Bytes()
	if err == redis.Nil {
		return types.Workflow{}, ErrNotFound
	}
	if err != nil {
		return types.Workflow{}, err
	}

	var w types.Workflow
	if err := json.Unmarshal(data, &w); err != nil {
		return types.Workflow{}, fmt.Errorf("failed to unmarshal workflow: %w", err)
	}
	return w, nil
}

// SaveDraft overwrites the project's draft workflow.
func (s *RedisWorkflowStore) SaveDraft(ctx context.Context, projectID string, w types.Workflow) error {
	if projectID == "" {
		return ErrInvalidInput
	}
	return s.set(ctx, projectID, VariantDraft, w)
}

// Publish promotes the current draft to the live variant.
func (s *RedisWorkflowStore) Publish(ctx context.Context, projectID string) error {
	draft, err := s.get(ctx, projectID, VariantDraft)
	if err != nil {
		return err
	}
	return s.set(ctx, projectID, VariantLive, draft)
}

// LoadDraft returns the project's draft workflow.
func (s *RedisWorkflowStore) LoadDraft(ctx context.Context, projectID string) (types.Workflow, error) {
	return s.get(ctx, projectID, VariantDraft)
}

// LoadLive returns the project's published workflow.
func (s *RedisWorkflowStore) LoadLive(ctx context.Context, projectID string) (types.Workflow, error) {
	return s.get(ctx, projectID, VariantLive)
}

// Delete removes both variants of the project's workflow.
func (s *RedisWorkflowStore) Delete(ctx context.Context, projectID string) error {
	return s.client.Del(ctx,
		s.key(projectID, VariantDraft),
		s.key(projectID, VariantLive),
	).Err()
}

// Close closes the store.
func (s *RedisWorkflowStore) Close() error {
	return s.client.Close()
}

// Ping checks if the store is healthy.
func (s *RedisWorkflowStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Ensure RedisWorkflowStore implements WorkflowStore
var _ WorkflowStore = (*RedisWorkflowStore)(nil)
