package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowboatlabs/workflowkit/types"
)

func TestUndoRedoRoundTrip(t *testing.T) {
	e := testEngine()
	s := NewState(testWorkflow(), false)

	actions := []Action{
		AddAgent{Agent: types.AgentPatch{Name: types.Ptr("Escalation")}},
		UpdateAgent{Name: "Front", Agent: types.AgentPatch{Instructions: types.Ptr("Revised.")}},
		AddTool{Tool: types.ToolPatch{Name: types.Ptr("close_ticket")}},
		DeleteAgent{Name: "Credit Check"},
		UpdateWorkflowName{Name: "Renamed"},
	}

	snapshots := []types.Workflow{s.Present.Workflow.Clone()}
	for _, a := range actions {
		s = mustApply(t, e, s, a)
		snapshots = append(snapshots, s.Present.Workflow.Clone())
	}
	require.Equal(t, len(actions), s.CurrentIndex)

	// Walk all the way back: each undo restores the prior document exactly.
	for i := len(actions) - 1; i >= 0; i-- {
		s = mustApply(t, e, s, Undo{})
		assert.Equal(t, snapshots[i], s.Present.Workflow, "after undo to step %d", i)
		assert.True(t, s.Present.PendingChanges)
	}
	require.Equal(t, 0, s.CurrentIndex)

	// And forward again: each redo restores the later document exactly.
	for i := 1; i <= len(actions); i++ {
		s = mustApply(t, e, s, Redo{})
		assert.Equal(t, snapshots[i], s.Present.Workflow, "after redo to step %d", i)
	}
	require.Equal(t, len(actions), s.CurrentIndex)
}

func TestUndoRedoBounds(t *testing.T) {
	e := testEngine()
	s := NewState(testWorkflow(), false)

	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())

	// Out-of-range undo/redo are silent no-ops.
	out := mustApply(t, e, s, Undo{})
	assert.Equal(t, s.Present, out.Present)
	out = mustApply(t, e, s, Redo{})
	assert.Equal(t, s.Present, out.Present)

	s = mustApply(t, e, s, AddAgent{})
	assert.True(t, s.CanUndo())
	assert.False(t, s.CanRedo())

	s = mustApply(t, e, s, Undo{})
	assert.False(t, s.CanUndo())
	assert.True(t, s.CanRedo())
}

func TestUndoRedoChatKey(t *testing.T) {
	e := testEngine()
	s := NewState(testWorkflow(), false)
	s = mustApply(t, e, s, AddAgent{})
	key := s.Present.ChatKey

	// Undo restores the pre-action counter from the inverse patch and
	// then bumps it, landing back on the post-action value.
	s = mustApply(t, e, s, Undo{})
	assert.Equal(t, key, s.Present.ChatKey)
	assert.True(t, s.Present.PendingChanges)

	// Redo replays the recorded post-action counter and bumps past it.
	s = mustApply(t, e, s, Redo{})
	assert.Equal(t, key+1, s.Present.ChatKey)
	assert.True(t, s.Present.PendingChanges)
}

func TestNewActionTruncatesRedoFuture(t *testing.T) {
	e := testEngine()
	s := NewState(testWorkflow(), false)

	s = mustApply(t, e, s, AddAgent{Agent: types.AgentPatch{Name: types.Ptr("A")}})
	s = mustApply(t, e, s, AddAgent{Agent: types.AgentPatch{Name: types.Ptr("B")}})
	s = mustApply(t, e, s, Undo{})
	require.True(t, s.CanRedo())

	// A fresh edit after an undo discards the redo branch.
	s = mustApply(t, e, s, AddAgent{Agent: types.AgentPatch{Name: types.Ptr("C")}})
	assert.False(t, s.CanRedo())
	assert.Equal(t, 2, s.CurrentIndex)
	assert.Len(t, s.Patches, 2)

	w := s.Present.Workflow
	assert.GreaterOrEqual(t, w.AgentIndex("C"), 0)
	assert.Equal(t, -1, w.AgentIndex("B"))
}

func TestRestoreStateClearsHistory(t *testing.T) {
	e := testEngine()
	s := NewState(testWorkflow(), false)
	s = mustApply(t, e, s, AddAgent{})
	s = mustApply(t, e, s, AddAgent{})
	require.True(t, s.CanUndo())

	fresh := StateItem{Workflow: testWorkflow()}
	s = mustApply(t, e, s, RestoreState{State: fresh})

	assert.Equal(t, fresh.Workflow, s.Present.Workflow)
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
	assert.Empty(t, s.Patches)
	assert.Empty(t, s.InversePatches)
}

func TestSelectionNotRecordedInHistory(t *testing.T) {
	e := testEngine()
	s := NewState(testWorkflow(), false)

	s = mustApply(t, e, s, Select{Type: SelectionAgent, Name: "Front"})
	assert.Equal(t, 0, s.CurrentIndex)
	assert.Empty(t, s.Patches)

	s = mustApply(t, e, s, Unselect{})
	assert.Empty(t, s.Patches)
	assert.Nil(t, s.Present.Selection)
}

func TestRejectedActionLeavesHistoryUntouched(t *testing.T) {
	e := testEngine()
	s := NewState(testWorkflow(), false)
	s = mustApply(t, e, s, AddAgent{Agent: types.AgentPatch{Name: types.Ptr("A")}})

	out, err := e.Apply(s, AddAgent{Agent: types.AgentPatch{Name: types.Ptr("A")}})
	require.Error(t, err)
	assert.Equal(t, s.CurrentIndex, out.CurrentIndex)
	assert.Equal(t, s.Present, out.Present)
}

func TestPatchesRecordOnlyChangedSections(t *testing.T) {
	e := testEngine()
	s := NewState(testWorkflow(), false)

	s = mustApply(t, e, s, UpdateWorkflowName{Name: "Renamed"})
	require.Len(t, s.Patches, 1)

	paths := map[string]bool{}
	for _, op := range s.Patches[0] {
		paths[op.Path] = true
	}
	assert.True(t, paths["workflow.name"])
	assert.False(t, paths["workflow.agents"])
	assert.False(t, paths["workflow.tools"])
}
