package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rowboatlabs/workflowkit/internal/metrics"
	"github.com/rowboatlabs/workflowkit/types"
)

// DefaultDebounce is the delay between the last enqueued edit and the
// actual save.
const DefaultDebounce = 2 * time.Second

// DefaultSaveTimeout bounds a single backend save.
const DefaultSaveTimeout = 30 * time.Second

// Synchronizer debounces workflow saves. Each project holds at most one
// queued document; enqueueing while one is queued replaces it
// (last-write-wins) and restarts the debounce window. At most one save
// per project is in flight at a time.
type Synchronizer struct {
	store       WorkflowStore
	log         *zap.Logger
	metrics     *metrics.Collector
	debounce    time.Duration
	saveTimeout time.Duration
	autoPublish bool
	onSettled   func(projectID string, err error)

	mu      sync.Mutex
	pending map[string]*pendingSave
	saving  map[string]bool
	closed  bool
	wg      sync.WaitGroup
}

type pendingSave struct {
	timer    *time.Timer
	workflow types.Workflow
}

// SyncOption configures a Synchronizer.
type SyncOption func(*Synchronizer)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) SyncOption {
	return func(s *Synchronizer) {
		s.log = log
	}
}

// WithMetrics sets the metrics collector. Defaults to none.
func WithMetrics(c *metrics.Collector) SyncOption {
	return func(s *Synchronizer) {
		s.metrics = c
	}
}

// WithDebounce sets the debounce window. Defaults to DefaultDebounce.
func WithDebounce(d time.Duration) SyncOption {
	return func(s *Synchronizer) {
		s.debounce = d
	}
}

// WithSaveTimeout bounds each backend save. Defaults to
// DefaultSaveTimeout.
func WithSaveTimeout(d time.Duration) SyncOption {
	return func(s *Synchronizer) {
		s.saveTimeout = d
	}
}

// WithAutoPublish makes every draft save immediately publish. Used for
// projects where the draft/live split is disabled.
func WithAutoPublish(enabled bool) SyncOption {
	return func(s *Synchronizer) {
		s.autoPublish = enabled
	}
}

// WithOnSettled registers a callback invoked after each save attempt
// settles, with the save error if any. Callers typically feed this back
// into the editor as a SetSaving(false) action.
func WithOnSettled(fn func(projectID string, err error)) SyncOption {
	return func(s *Synchronizer) {
		s.onSettled = fn
	}
}

// NewSynchronizer creates a save synchronizer on top of the store.
func NewSynchronizer(store WorkflowStore, opts ...SyncOption) *Synchronizer {
	s := &Synchronizer{
		store:       store,
		log:         zap.NewNop(),
		debounce:    DefaultDebounce,
		saveTimeout: DefaultSaveTimeout,
		pending:     make(map[string]*pendingSave),
		saving:      make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enqueue schedules the workflow for saving after the debounce window.
// A document already queued for the project is replaced and the window
// restarts. Workflows without an ID are assigned one.
func (s *Synchronizer) Enqueue(projectID string, w types.Workflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	if projectID == "" {
		return ErrInvalidInput
	}

	cp := w.Clone()
	if cp.ID == "" {
		cp.ID = uuid.New().String()
	}

	if p, ok := s.pending[projectID]; ok {
		p.workflow = cp
		p.timer.Reset(s.debounce)
		s.metrics.RecordCoalesced()
		return nil
	}

	p := &pendingSave{workflow: cp}
	p.timer = time.AfterFunc(s.debounce, func() {
		s.fire(projectID)
	})
	s.pending[projectID] = p
	s.metrics.SetQueueDepth(len(s.pending))
	return nil
}

// fire moves a queued document into an in-flight save. If a save for the
// project is still running the document stays queued and the window
// restarts, preserving save order.
func (s *Synchronizer) fire(projectID string) {
	s.mu.Lock()
	p, ok := s.pending[projectID]
	if !ok {
		s.mu.Unlock()
		return
	}
	if s.saving[projectID] {
		p.timer.Reset(s.debounce)
		s.mu.Unlock()
		return
	}
	delete(s.pending, projectID)
	s.saving[projectID] = true
	s.metrics.SetQueueDepth(len(s.pending))
	w := p.workflow
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		err := s.save(projectID, w)

		s.mu.Lock()
		delete(s.saving, projectID)
		s.mu.Unlock()

		if s.onSettled != nil {
			s.onSettled(projectID, err)
		}
	}()
}

func (s *Synchronizer) save(projectID string, w types.Workflow) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
	defer cancel()

	start := time.Now()
	err := s.store.SaveDraft(ctx, projectID, w)
	s.metrics.RecordSave(string(VariantDraft), time.Since(start), err)
	if err != nil {
		s.log.Error("draft save failed",
			zap.String("projectId", projectID),
			zap.Error(err))
		return err
	}
	s.log.Debug("draft saved",
		zap.String("projectId", projectID),
		zap.String("workflowId", w.ID))

	if !s.autoPublish {
		return nil
	}

	start = time.Now()
	err = s.store.Publish(ctx, projectID)
	s.metrics.RecordSave(string(VariantLive), time.Since(start), err)
	if err != nil {
		s.log.Error("auto-publish failed",
			zap.String("projectId", projectID),
			zap.Error(err))
		return err
	}
	return nil
}

// Flush saves every queued document immediately, bypassing the debounce
// window. It blocks until the saves settle.
func (s *Synchronizer) Flush(ctx context.Context) error {
	s.mu.Lock()
	queued := make(map[string]types.Workflow, len(s.pending))
	for projectID, p := range s.pending {
		p.timer.Stop()
		queued[projectID] = p.workflow
		delete(s.pending, projectID)
	}
	s.metrics.SetQueueDepth(0)
	s.mu.Unlock()

	var firstErr error
	for projectID, w := range queued {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.save(projectID, w)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		if s.onSettled != nil {
			s.onSettled(projectID, err)
		}
	}
	return firstErr
}

// Discard drops the queued document for the project, if any. Used when a
// restore or a draft/live switch supersedes unsaved edits.
func (s *Synchronizer) Discard(projectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[projectID]
	if !ok {
		return
	}
	p.timer.Stop()
	delete(s.pending, projectID)
	s.metrics.RecordDiscarded()
	s.metrics.SetQueueDepth(len(s.pending))
}

// Close flushes queued documents, waits for in-flight saves and rejects
// further enqueues. The underlying store is not closed.
func (s *Synchronizer) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	err := s.Flush(context.Background())
	s.wg.Wait()
	return err
}
