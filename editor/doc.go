// Package editor implements the workflow editor core: a pure reducer over
// the workflow document, reference-integrity cascades for renames and
// deletes, and a patch-based linear undo/redo history.
//
// # Reducer
//
// All edits flow through a single entry point:
//
//	next, err := engine.Apply(state, editor.DeleteAgent{Name: "Bot"})
//
// Apply never mutates its input. Actions are a closed set of tagged
// variants dispatched by type switch; each mutating action validates its
// input, applies the change to a deep copy of the present state, runs the
// rename/delete cascades, and records a forward/inverse patch pair.
// Validation failures reject the action with the state unchanged.
//
// # History
//
// Patches are section-level structural deltas: each op names a state
// section (workflow.agents, selection, chatKey, ...) and carries the
// section's JSON value. The forward patch holds post-action values, the
// inverse patch pre-action values, so undo and redo replay recorded data
// instead of recomputing. Appending after undos truncates the stale
// future. Undo at index zero and redo at the end are no-ops, never
// errors.
//
// # Live guard
//
// While the state views the published (live) variant, mutating actions
// are refused with ErrWorkflowLive; callers must switch to the draft
// first. Selection and flag actions remain available.
package editor
