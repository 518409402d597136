package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rowboatlabs/workflowkit/types"
)

// FileWorkflowStore is a file-based implementation of WorkflowStore.
// Suitable for single-node deployments. Each project gets a directory
// with one JSON file per variant; writes are atomic via temp-and-rename.
type FileWorkflowStore struct {
	baseDir string
	mu      sync.RWMutex
	closed  bool
}

// NewFileWorkflowStore creates a new file-based workflow store.
func NewFileWorkflowStore(config StoreConfig) (*FileWorkflowStore, error) {
	baseDir := filepath.Join(config.BaseDir, "workflows")
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create workflow store directory: %w", err)
	}
	return &FileWorkflowStore{baseDir: baseDir}, nil
}

func (s *FileWorkflowStore) path(projectID string, variant Variant) string {
	return filepath.Join(s.baseDir, projectID, string(variant)+".json")
}

func (s *FileWorkflowStore) write(projectID string, variant Variant, w types.Workflow) error {
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal workflow: %w", err)
	}

	path := s.path(projectID, variant)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	// Atomic write: temp file then rename.
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tempPath, path)
}

func (s *FileWorkflowStore) read(projectID string, variant Variant) (types.Workflow, error) {
	data, err := os.ReadFile(s.path(projectID, variant))
	if os.IsNotExist(err) {
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
func (s *FileWorkflowStore) SaveDraft(ctx context.Context, projectID string, w types.Workflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	if projectID == "" {
		return ErrInvalidInput
	}
	return s.write(projectID, VariantDraft, w)
}

// Publish promotes the current draft to the live variant.
func (s *FileWorkflowStore) Publish(ctx context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	draft, err := s.read(projectID, VariantDraft)
	if err != nil {
		return err
	}
	return s.write(projectID, VariantLive, draft)
}

// LoadDraft returns the project's draft workflow.
func (s *FileWorkflowStore) LoadDraft(ctx context.Context, projectID string) (types.Workflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return types.Workflow{}, ErrStoreClosed
	}
	return s.read(projectID, VariantDraft)
}

// LoadLive returns the project's published workflow.
func (s *FileWorkflowStore) LoadLive(ctx context.Context, projectID string) (types.Workflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return types.Workflow{}, ErrStoreClosed
	}
	return s.read(projectID, VariantLive)
}

// Delete removes both variants of the project's workflow.
func (s *FileWorkflowStore) Delete(ctx context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	if projectID == "" {
		return ErrInvalidInput
	}
	return os.RemoveAll(filepath.Join(s.baseDir, projectID))
}

// Close closes the store.
func (s *FileWorkflowStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Ping checks if the store is healthy.
func (s *FileWorkflowStore) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	_, err := os.Stat(s.baseDir)
	return err
}

// Ensure FileWorkflowStore implements WorkflowStore
var _ WorkflowStore = (*FileWorkflowStore)(nil)
