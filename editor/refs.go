package editor

import "github.com/rowboatlabs/workflowkit/types"

// rewriteMentions rewrites (or strips, when next is empty) every mention
// of the named entity across agent instructions and prompt bodies.
func rewriteMentions(w *types.Workflow, kind types.MentionKind, old, next string) {
	for i := range w.Agents {
		w.Agents[i].Instructions = types.ReplaceMention(w.Agents[i].Instructions, kind, old, next)
	}
	for i := range w.Prompts {
		w.Prompts[i].Prompt = types.ReplaceMention(w.Prompts[i].Prompt, kind, old, next)
	}
}

// removePipelineMember drops the agent from every pipeline member list.
func removePipelineMember(w *types.Workflow, name string) {
	for i := range w.Pipelines {
		members := w.Pipelines[i].Agents
		kept := members[:0]
		for _, m := range members {
			if m != name {
				kept = append(kept, m)
			}
		}
		w.Pipelines[i].Agents = kept
	}
}

// reassignStartAgent repoints StartAgent at the first remaining agent
// when its current target no longer exists.
func reassignStartAgent(w *types.Workflow) {
	if w.StartAgent != "" && w.AgentIndex(w.StartAgent) >= 0 {
		return
	}
	if len(w.Agents) > 0 {
		w.StartAgent = w.Agents[0].Name
		return
	}
	w.StartAgent = ""
}

// clearSelectionIf drops the selection only when it points at the given
// entity; selections on unrelated entities survive deletes.
func clearSelectionIf(item *StateItem, typ SelectionType, name string) {
	if item.Selection != nil && item.Selection.Type == typ && item.Selection.Name == name {
		item.Selection = nil
	}
}

// cascadeAgentRename updates every reference to a renamed agent:
// mentions, pipeline membership, the start agent, and a selection that
// was following the old name.
func cascadeAgentRename(item *StateItem, old, next string) {
	w := &item.Workflow
	rewriteMentions(w, types.MentionAgent, old, next)
	for i := range w.Pipelines {
		for j, m := range w.Pipelines[i].Agents {
			if m == old {
				w.Pipelines[i].Agents[j] = next
			}
		}
	}
	if w.StartAgent == old {
		w.StartAgent = next
	}
	if item.Selection != nil && item.Selection.Type == SelectionAgent && item.Selection.Name == old {
		item.Selection = &Selection{Type: SelectionAgent, Name: next}
	}
}

// cascadeAgentDelete cleans up after an agent removal. The agent itself
// has already been dropped from the slice.
func cascadeAgentDelete(item *StateItem, name string) {
	w := &item.Workflow
	rewriteMentions(w, types.MentionAgent, name, "")
	removePipelineMember(w, name)
	reassignStartAgent(w)
	clearSelectionIf(item, SelectionAgent, name)
}

func cascadeToolRename(item *StateItem, old, next string) {
	rewriteMentions(&item.Workflow, types.MentionTool, old, next)
	if item.Selection != nil && item.Selection.Type == SelectionTool && item.Selection.Name == old {
		item.Selection = &Selection{Type: SelectionTool, Name: next}
	}
}

func cascadePromptRename(item *StateItem, old, next string) {
	rewriteMentions(&item.Workflow, types.MentionPrompt, old, next)
	if item.Selection != nil && item.Selection.Type == SelectionPrompt && item.Selection.Name == old {
		item.Selection = &Selection{Type: SelectionPrompt, Name: next}
	}
}
