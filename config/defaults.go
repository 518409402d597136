package config

import (
	"github.com/rowboatlabs/workflowkit/persistence"
	"github.com/rowboatlabs/workflowkit/types"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Store:   DefaultStoreConfig(),
		Editor:  DefaultEditorConfig(),
		Metrics: DefaultMetricsConfig(),
		Log:     DefaultLogConfig(),
	}
}

// DefaultStoreConfig returns the default store configuration.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		Type:    string(persistence.StoreTypeMemory),
		BaseDir: "./data/workflows",
		Redis: RedisConfig{
			Host:      "localhost",
			Port:      6379,
			DB:        0,
			PoolSize:  10,
			KeyPrefix: "workflowkit:",
		},
		Mongo: MongoConfig{
			URI:        "mongodb://localhost:27017",
			Database:   "workflowkit",
			Collection: "workflows",
		},
	}
}

// DefaultEditorConfig returns the default editor configuration.
func DefaultEditorConfig() EditorConfig {
	return EditorConfig{
		SaveDebounce: persistence.DefaultDebounce,
		SaveTimeout:  persistence.DefaultSaveTimeout,
		AutoPublish:  false,
		DefaultModel: types.DefaultPipelineAgentModel,
	}
}

// DefaultMetricsConfig returns the default metrics configuration.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   true,
		Namespace: "workflowkit",
	}
}

// DefaultLogConfig returns the default log configuration.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:       "info",
		Format:      "json",
		OutputPaths: []string{"stdout"},
	}
}
