package persistence

import "fmt"

// NewWorkflowStore creates a new WorkflowStore based on the configuration
func NewWorkflowStore(config StoreConfig) (WorkflowStore, error) {
	switch config.Type {
	case StoreTypeMemory:
		return NewMemoryWorkflowStore(), nil
	case StoreTypeFile:
		return NewFileWorkflowStore(config)
	case StoreTypeRedis:
		return NewRedisWorkflowStore(config)
	case StoreTypeMongo:
		return NewMongoWorkflowStore(config)
	default:
		return nil, fmt.Errorf("unsupported workflow store type: %s", config.Type)
	}
}

// MustNewWorkflowStore creates a new WorkflowStore or panics on error.
//
// This should only be used during application initialization. For runtime
// store creation, use NewWorkflowStore instead.
func MustNewWorkflowStore(config StoreConfig) WorkflowStore {
	store, err := NewWorkflowStore(config)
	if err != nil {
		panic(fmt.Sprintf("failed to create workflow store: %v", err))
	}
	return store
}
