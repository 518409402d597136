package editor

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/rowboatlabs/workflowkit/types"
)

// genAction draws one random mutating action against names that may or
// may not exist, exercising both the success and validation paths.
func genAction(t *rapid.T) Action {
	name := rapid.SampledFrom([]string{"Front", "Credit Check", "Ghost", "Helper", "Intake"}).Draw(t, "name")
	switch rapid.IntRange(0, 9).Draw(t, "kind") {
	case 0:
		return AddAgent{Agent: types.AgentPatch{Name: types.Ptr(name)}}
	case 1:
		return UpdateAgent{Name: name, Agent: types.AgentPatch{
			Instructions: types.Ptr(rapid.StringMatching(`[a-z ]{0,40}`).Draw(t, "instructions")),
		}}
	case 2:
		return DeleteAgent{Name: name}
	case 3:
		return AddTool{Tool: types.ToolPatch{Name: types.Ptr("tool_" + rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "tool"))}}
	case 4:
		return DeleteTool{Name: "tool_" + rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "tool")}
	case 5:
		return AddPrompt{Prompt: types.PromptPatch{Name: types.Ptr(name)}}
	case 6:
		return DeletePrompt{Name: name}
	case 7:
		return SetMainAgent{Name: name}
	case 8:
		return UpdateWorkflowName{Name: name}
	default:
		return ToggleAgent{Name: name}
	}
}

// Any sequence of accepted actions can be fully unwound by undo, landing
// byte-exactly on the starting document, and fully replayed by redo.
func TestPropUndoRestoresEveryStep(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := testEngine()
		s := NewState(testWorkflow(), false)

		snapshots := []types.Workflow{s.Present.Workflow.Clone()}
		steps := rapid.IntRange(1, 12).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			next, err := e.Apply(s, genAction(t))
			if err != nil {
				continue
			}
			s = next
			snapshots = append(snapshots, s.Present.Workflow.Clone())
		}

		applied := s.CurrentIndex
		require.Equal(t, len(snapshots)-1, applied)

		for i := applied - 1; i >= 0; i-- {
			var err error
			s, err = e.Apply(s, Undo{})
			require.NoError(t, err)
			require.Equal(t, snapshots[i], s.Present.Workflow)
		}
		for i := 1; i <= applied; i++ {
			var err error
			s, err = e.Apply(s, Redo{})
			require.NoError(t, err)
			require.Equal(t, snapshots[i], s.Present.Workflow)
		}
	})
}

// A rejected action never changes the state it was applied to.
func TestPropRejectionLeavesStateIntact(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := testEngine()
		s := NewState(testWorkflow(), false)

		steps := rapid.IntRange(1, 15).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			before := s.Present.Clone()
			next, err := e.Apply(s, genAction(t))
			if err != nil {
				require.Equal(t, before, next.Present)
				require.Equal(t, s.CurrentIndex, next.CurrentIndex)
				continue
			}
			s = next
		}
	})
}

// Mention integrity: after any accepted sequence, no instruction or
// prompt body mentions an agent that no longer exists.
func TestPropNoDanglingAgentMentions(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := testEngine()
		s := NewState(testWorkflow(), false)

		steps := rapid.IntRange(1, 15).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			next, err := e.Apply(s, genAction(t))
			if err != nil {
				continue
			}
			s = next
		}

		w := s.Present.Workflow
		for _, name := range []string{"Front", "Credit Check", "Ghost", "Helper", "Intake"} {
			if w.AgentIndex(name) >= 0 {
				continue
			}
			marker := types.Mention(types.MentionAgent, name)
			for _, a := range w.Agents {
				require.NotContains(t, a.Instructions, marker)
			}
			for _, p := range w.Prompts {
				require.NotContains(t, p.Prompt, marker)
			}
		}

		// StartAgent always points at a real agent or is empty.
		if w.StartAgent != "" {
			require.GreaterOrEqual(t, w.AgentIndex(w.StartAgent), 0)
		}
	})
}

// Reordering is deterministic: the same input sequence always yields the
// same Order assignments, independent of prior Order values.
func TestReorderDeterminism(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("order is position times 100", prop.ForAll(
		func(orders []int) bool {
			e := NewEngine(WithClock(func() time.Time { return time.Unix(0, 0) }))
			agents := make([]types.Agent, len(orders))
			for i, o := range orders {
				agents[i] = types.NewAgent(types.AgentPatch{
					Name:  types.Ptr("A" + string(rune('a'+i%26)) + "-" + string(rune('a'+i/26%26))),
					Order: types.Ptr(o),
				})
			}
			s := NewState(types.Workflow{}, false)
			s, err := e.Apply(s, ReorderAgents{Agents: agents})
			if err != nil {
				return false
			}
			for i, a := range s.Present.Workflow.Agents {
				if a.Order != i*100 {
					return false
				}
			}
			return len(s.Present.Workflow.Agents) == len(agents)
		},
		gen.SliceOf(gen.IntRange(-1000, 1000)),
	))

	properties.TestingRun(t)
}
