package persistence

import (
	"context"
	"sync"

	"github.com/rowboatlabs/workflowkit/types"
)

// MemoryWorkflowStore is an in-memory implementation of WorkflowStore.
// Suitable for development and testing.
type MemoryWorkflowStore struct {
	mu        sync.RWMutex
	workflows map[string]map[Variant]types.Workflow
	closed    bool
}

// NewMemoryWorkflowStore creates a new in-memory workflow store.
func NewMemoryWorkflowStore() *MemoryWorkflowStore {
	return &MemoryWorkflowStore{
		workflows: make(map[string]map[Variant]types.Workflow),
	}
}

func (s *MemoryWorkflowStore) save(projectID string, variant Variant, w types.Workflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	if projectID == "" {
		return ErrInvalidInput
	}
	variants, ok := s.workflows[projectID]
	if !ok {
		variants = make(map[Variant]types.Workflow, 2)
		s.workflows[projectID] = variants
	}
	variants[variant] = w.Clone()
	return nil
}

func (s *MemoryWorkflowStore) load(projectID string, variant Variant) (types.Workflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return types.Workflow{}, ErrStoreClosed
	}
	w, ok := s.workflows[projectID][variant]
	if !ok {
		return types.Workflow{}, ErrNotFound
	}
	return w.Clone(), nil
}

// SaveDraft overwrites the project's draft workflow.
func (s *MemoryWorkflowStore) SaveDraft(ctx context.Context, projectID string, w types.Workflow) error {
	return s.save(projectID, VariantDraft, w)
}

// Publish promotes the current draft to the live variant.
func (s *MemoryWorkflowStore) Publish(ctx context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	draft, ok := s.workflows[projectID][VariantDraft]
	if !ok {
		return ErrNotFound
	}
	s.workflows[projectID][VariantLive] = draft.Clone()
	return nil
}

// LoadDraft returns the project's draft workflow.
func (s *MemoryWorkflowStore) LoadDraft(ctx context.Context, projectID string) (types.Workflow, error) {
	return s.load(projectID, VariantDraft)
}

// LoadLive returns the project's published workflow.
func (s *MemoryWorkflowStore) LoadLive(ctx context.Context, projectID string) (types.Workflow, error) {
	return s.load(projectID, VariantLive)
}

// Delete removes both variants of the project's workflow.
func (s *MemoryWorkflowStore) Delete(ctx context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	delete(s.workflows, projectID)
	return nil
}

// Close closes the store.
func (s *MemoryWorkflowStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Ping checks if the store is healthy.
func (s *MemoryWorkflowStore) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	return nil
}

// Ensure MemoryWorkflowStore implements WorkflowStore
var _ WorkflowStore = (*MemoryWorkflowStore)(nil)
