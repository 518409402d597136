package editor

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/rowboatlabs/workflowkit/internal/metrics"
)

// ErrWorkflowLive rejects mutating actions while the published (live)
// variant is being viewed. Callers must switch to the draft first.
var ErrWorkflowLive = errors.New("workflow is live: switch to draft before editing")

// Engine applies actions to editor state. It holds only injected
// collaborators (logger, metrics, clock); all document state lives in the
// State values passed through Apply, so one Engine can serve any number
// of documents.
type Engine struct {
	log     *zap.Logger
	metrics *metrics.Collector
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithMetrics sets the metrics collector. Defaults to none.
func WithMetrics(c *metrics.Collector) Option {
	return func(e *Engine) {
		e.metrics = c
	}
}

// WithClock sets the time source used for LastUpdatedAt stamps. Defaults
// to time.Now. Tests inject a fixed clock to keep Apply deterministic.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an editor engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		log: zap.NewNop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Apply is the single action entry point: it maps (state, action) to the
// next state without touching its inputs. Validation failures and the
// live guard return the state unchanged alongside the error.
func (e *Engine) Apply(s State, a Action) (State, error) {
	switch act := a.(type) {
	case Undo:
		return e.undo(s)
	case Redo:
		return e.redo(s)
	case RestoreState:
		// Hard reset: history must never straddle a restore boundary.
		return State{Present: act.State.Clone()}, nil
	case Select:
		next := s
		next.Present = s.Present.Clone()
		next.Present.Selection = &Selection{Type: act.Type, Name: act.Name}
		return next, nil
	case Unselect:
		next := s
		next.Present = s.Present.Clone()
		next.Present.Selection = nil
		return next, nil
	case SetSaving:
		next := s
		next.Present = s.Present.Clone()
		next.Present.Saving = act.Saving
		next.Present.PendingChanges = act.Saving
		if act.Saving {
			next.Present.LastUpdatedAt = s.Present.Workflow.LastUpdatedAt
		} else {
			next.Present.LastUpdatedAt = e.now().UTC().Format(time.RFC3339)
		}
		return next, nil
	case SetPublishing:
		next := s
		next.Present = s.Present.Clone()
		next.Present.Publishing = act.Publishing
		return next, nil
	case SetLive:
		next := s
		next.Present = s.Present.Clone()
		next.Present.IsLive = act.Live
		return next, nil
	default:
		return e.applyMutating(s, a)
	}
}

// applyMutating runs a document-mutating action and records its patch
// pair in history.
func (e *Engine) applyMutating(s State, a Action) (State, error) {
	if s.Present.IsLive {
		e.metrics.RecordRejection(a.ActionName())
		return s, ErrWorkflowLive
	}

	next := s.Present.Clone()
	if err := e.mutate(&next, a); err != nil {
		e.metrics.RecordRejection(a.ActionName())
		e.log.Debug("action rejected",
			zap.String("action", a.ActionName()),
			zap.Error(err))
		return s, err
	}

	forward, inverse, err := diffState(&s.Present, &next)
	if err != nil {
		return s, err
	}

	// Appending after undos discards the stale future.
	patches := make([]Patch, s.CurrentIndex, s.CurrentIndex+1)
	copy(patches, s.Patches[:s.CurrentIndex])
	patches = append(patches, forward)

	inversePatches := make([]Patch, s.CurrentIndex, s.CurrentIndex+1)
	copy(inversePatches, s.InversePatches[:s.CurrentIndex])
	inversePatches = append(inversePatches, inverse)

	out := State{
		Present:        next,
		Patches:        patches,
		InversePatches: inversePatches,
		CurrentIndex:   s.CurrentIndex + 1,
	}

	e.metrics.RecordAction(a.ActionName())
	e.metrics.SetHistoryDepth(out.CurrentIndex)
	e.log.Debug("action applied",
		zap.String("action", a.ActionName()),
		zap.Int("historyDepth", out.CurrentIndex))
	return out, nil
}

func (e *Engine) undo(s State) (State, error) {
	if !s.CanUndo() {
		return s, nil
	}
	item := s.Present.Clone()
	if err := applyPatch(&item, s.InversePatches[s.CurrentIndex-1]); err != nil {
		return s, err
	}
	item.PendingChanges = true
	item.ChatKey++

	next := s
	next.Present = item
	next.CurrentIndex--
	e.metrics.RecordUndo()
	e.metrics.SetHistoryDepth(next.CurrentIndex)
	return next, nil
}

func (e *Engine) redo(s State) (State, error) {
	if !s.CanRedo() {
		return s, nil
	}
	item := s.Present.Clone()
	if err := applyPatch(&item, s.Patches[s.CurrentIndex]); err != nil {
		return s, err
	}
	item.PendingChanges = true
	item.ChatKey++

	next := s
	next.Present = item
	next.CurrentIndex++
	e.metrics.RecordRedo()
	e.metrics.SetHistoryDepth(next.CurrentIndex)
	return next, nil
}
