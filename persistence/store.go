// Package persistence stores workflow documents and schedules their
// saves.
//
// A workflow exists in two variants per project: the editable draft and
// the published live copy. Publish promotes the current draft to live.
//
// Supported backends:
// - Memory: for development and testing (default)
// - File: for single-node deployments
// - Redis: for distributed deployments
// - Mongo: for deployments that already run MongoDB
package persistence

import (
	"context"
	"errors"

	"github.com/rowboatlabs/workflowkit/types"
)

// Common errors
var (
	ErrNotFound     = errors.New("not found")
	ErrStoreClosed  = errors.New("store is closed")
	ErrInvalidInput = errors.New("invalid input")
)

// Variant identifies which copy of a project's workflow is addressed.
type Variant string

const (
	VariantDraft Variant = "draft"
	VariantLive  Variant = "live"
)

// StoreType represents the type of storage backend
type StoreType string

const (
	StoreTypeMemory StoreType = "memory"
	StoreTypeFile   StoreType = "file"
	StoreTypeRedis  StoreType = "redis"
	StoreTypeMongo  StoreType = "mongo"
)

// StoreConfig is the base configuration for all store implementations
type StoreConfig struct {
	// Type is the storage backend type
	Type StoreType `json:"type" yaml:"type"`

	// BaseDir is the base directory for file-based storage
	BaseDir string `json:"base_dir" yaml:"base_dir"`

	// Redis configuration (only used when Type is "redis")
	Redis RedisStoreConfig `json:"redis" yaml:"redis"`

	// Mongo configuration (only used when Type is "mongo")
	Mongo MongoStoreConfig `json:"mongo" yaml:"mongo"`
}

// RedisStoreConfig contains Redis-specific configuration
type RedisStoreConfig struct {
	// Host is the Redis server host
	Host string `json:"host" yaml:"host"`

	// Port is the Redis server port
	Port int `json:"port" yaml:"port"`

	// Password is the Redis password (optional)
	Password string `json:"password" yaml:"password"`

	// DB is the Redis database number
	DB int `json:"db" yaml:"db"`

	// PoolSize is the connection pool size
	PoolSize int `json:"pool_size" yaml:"pool_size"`

	// KeyPrefix is the prefix for all Redis keys
	KeyPrefix string `json:"key_prefix" yaml:"key_prefix"`
}

// MongoStoreConfig contains MongoDB-specific configuration
type MongoStoreConfig struct {
	// URI is the MongoDB connection string
	URI string `json:"uri" yaml:"uri"`

	// Database is the database name
	Database string `json:"database" yaml:"database"`

	// Collection is the collection holding workflow documents
	Collection string `json:"collection" yaml:"collection"`
}

// DefaultStoreConfig returns the default store configuration
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		Type:    StoreTypeMemory,
		BaseDir: "./data/workflows",
		Redis: RedisStoreConfig{
			Host:      "localhost",
			Port:      6379,
			DB:        0,
			PoolSize:  10,
			KeyPrefix: "workflowkit:",
		},
		Mongo: MongoStoreConfig{
			URI:        "mongodb://localhost:27017",
			Database:   "workflowkit",
			Collection: "workflows",
		},
	}
}

// WorkflowStore persists workflow documents keyed by project and variant.
type WorkflowStore interface {
	// SaveDraft overwrites the project's draft workflow.
	SaveDraft(ctx context.Context, projectID string, w types.Workflow) error

	// Publish promotes the project's current draft to the live variant.
	// Returns ErrNotFound if the project has no draft.
	Publish(ctx context.Context, projectID string) error

	// LoadDraft returns the project's draft workflow.
	LoadDraft(ctx context.Context, projectID string) (types.Workflow, error)

	// LoadLive returns the project's published workflow.
	LoadLive(ctx context.Context, projectID string) (types.Workflow, error)

	// Delete removes both variants of the project's workflow.
	Delete(ctx context.Context, projectID string) error

	// Close closes the store and releases resources
	Close() error

	// Ping checks if the store is healthy
	Ping(ctx context.Context) error
}
