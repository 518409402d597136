package editor

import (
	"fmt"

	"github.com/rowboatlabs/workflowkit/types"
)

// mutate dispatches a document-mutating action to its handler. Handlers
// work on a private clone; on error the clone is discarded and the caller
// returns the original state untouched.
func (e *Engine) mutate(item *StateItem, a Action) error {
	switch act := a.(type) {
	case AddAgent:
		return addAgent(item, act)
	case UpdateAgent:
		return updateAgent(item, act.Name, act.Agent, true)
	case UpdateAgentNoSelect:
		return updateAgent(item, act.Name, act.Agent, false)
	case DeleteAgent:
		return deleteAgent(item, act.Name)
	case AddTool:
		return addTool(item, act)
	case UpdateTool:
		return updateTool(item, act.Name, act.Tool, true)
	case UpdateToolNoSelect:
		return updateTool(item, act.Name, act.Tool, false)
	case DeleteTool:
		return deleteTool(item, act.Name)
	case RenameToolParam:
		return renameToolParam(item, act)
	case AddPrompt:
		return addPrompt(item, act)
	case UpdatePrompt:
		return updatePrompt(item, act.Name, act.Prompt, true)
	case UpdatePromptNoSelect:
		return updatePrompt(item, act.Name, act.Prompt, false)
	case DeletePrompt:
		return deletePrompt(item, act.Name)
	case AddPipeline:
		return addPipeline(item, act)
	case UpdatePipeline:
		return updatePipeline(item, act)
	case DeletePipeline:
		return deletePipeline(item, act.Name)
	case ReorderAgents:
		return reorderAgents(item, act.Agents)
	case ReorderPipelines:
		return reorderPipelines(item, act.Pipelines)
	case ToggleAgent:
		return toggleAgent(item, act.Name)
	case SetMainAgent:
		return setMainAgent(item, act.Name)
	case UpdateWorkflowName:
		item.Workflow.Name = act.Name
		markDirty(item)
		return nil
	default:
		return fmt.Errorf("editor: unhandled action %T", a)
	}
}

// markDirty flags the document for the save queue and invalidates
// dependent views.
func markDirty(item *StateItem) {
	item.PendingChanges = true
	item.ChatKey++
}

func agentNames(agents []types.Agent) []string {
	names := make([]string, len(agents))
	for i, a := range agents {
		names[i] = a.Name
	}
	return names
}

func addAgent(item *StateItem, act AddAgent) error {
	w := &item.Workflow

	agent := types.NewAgent(act.Agent)
	if agent.Name == "" {
		agent.Name = types.NextDefaultName(agentNames(w.Agents), types.DefaultAgentName, " ")
	}
	if err := types.ValidateName("agent", agent.Name); err != nil {
		return err
	}
	if w.AgentIndex(agent.Name) >= 0 {
		return &types.ValidationError{Field: "agent", Value: agent.Name, Reason: "an agent with this name already exists"}
	}

	w.Agents = append(w.Agents, agent)

	// The first agent in an empty workflow becomes the start agent.
	if w.StartAgent == "" || len(w.Agents) == 1 {
		w.StartAgent = agent.Name
	}

	if !act.FromCopilot {
		item.Selection = &Selection{Type: SelectionAgent, Name: agent.Name}
	}
	markDirty(item)
	return nil
}

func updateAgent(item *StateItem, name string, patch types.AgentPatch, selectAfter bool) error {
	w := &item.Workflow
	idx := w.AgentIndex(name)
	if idx < 0 {
		return &types.ValidationError{Field: "agent", Value: name, Reason: "agent does not exist"}
	}

	renamed := patch.Name != nil && *patch.Name != name
	if renamed {
		if err := types.ValidateName("agent", *patch.Name); err != nil {
			return err
		}
		if w.AgentIndex(*patch.Name) >= 0 {
			return &types.ValidationError{Field: "agent", Value: *patch.Name, Reason: "an agent with this name already exists"}
		}
	}

	if patch.Instructions != nil {
		item.AgentInstructionsChanged = true
	}

	patch.Apply(&w.Agents[idx])

	if renamed {
		cascadeAgentRename(item, name, w.Agents[idx].Name)
	}
	if selectAfter {
		item.Selection = &Selection{Type: SelectionAgent, Name: w.Agents[idx].Name}
	}
	markDirty(item)
	return nil
}

func deleteAgent(item *StateItem, name string) error {
	w := &item.Workflow
	idx := w.AgentIndex(name)
	if idx >= 0 {
		w.Agents = append(w.Agents[:idx], w.Agents[idx+1:]...)
	}

	cascadeAgentDelete(item, name)
	markDirty(item)
	return nil
}

func toolNames(tools []types.Tool) []string {
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = t.Name
	}
	return names
}

func addTool(item *StateItem, act AddTool) error {
	w := &item.Workflow

	tool := types.NewTool(act.Tool)
	if tool.Name == "" {
		tool.Name = types.NextDefaultName(toolNames(w.Tools), types.DefaultToolName, "_")
	}
	if err := types.ValidateName("tool", tool.Name); err != nil {
		return err
	}
	if w.ToolIndex(tool.Name) >= 0 {
		return &types.ValidationError{Field: "tool", Value: tool.Name, Reason: "a tool with this name already exists"}
	}
	if err := tool.Validate(); err != nil {
		return err
	}

	w.Tools = append(w.Tools, tool)

	if !act.FromCopilot {
		item.Selection = &Selection{Type: SelectionTool, Name: tool.Name}
	}
	markDirty(item)
	return nil
}

func updateTool(item *StateItem, name string, patch types.ToolPatch, selectAfter bool) error {
	w := &item.Workflow
	idx := w.ToolIndex(name)
	if idx < 0 {
		return &types.ValidationError{Field: "tool", Value: name, Reason: "tool does not exist"}
	}

	renamed := patch.Name != nil && *patch.Name != name
	if renamed {
		if err := types.ValidateName("tool", *patch.Name); err != nil {
			return err
		}
		if w.ToolIndex(*patch.Name) >= 0 {
			return &types.ValidationError{Field: "tool", Value: *patch.Name, Reason: "a tool with this name already exists"}
		}
	}
	if patch.Parameters != nil {
		if err := patch.Parameters.Validate(); err != nil {
			return err
		}
	}

	patch.Apply(&w.Tools[idx])

	if renamed {
		cascadeToolRename(item, name, w.Tools[idx].Name)
	}
	if selectAfter {
		item.Selection = &Selection{Type: SelectionTool, Name: w.Tools[idx].Name}
	}
	markDirty(item)
	return nil
}

func deleteTool(item *StateItem, name string) error {
	w := &item.Workflow
	idx := w.ToolIndex(name)
	if idx >= 0 {
		w.Tools = append(w.Tools[:idx], w.Tools[idx+1:]...)
	}

	rewriteMentions(&item.Workflow, types.MentionTool, name, "")
	clearSelectionIf(item, SelectionTool, name)
	markDirty(item)
	return nil
}

func renameToolParam(item *StateItem, act RenameToolParam) error {
	w := &item.Workflow
	idx := w.ToolIndex(act.Tool)
	if idx < 0 {
		return &types.ValidationError{Field: "tool", Value: act.Tool, Reason: "tool does not exist"}
	}
	if act.To == "" {
		return &types.ValidationError{Field: "parameter", Reason: "name must not be empty"}
	}
	if _, exists := w.Tools[idx].Parameters.Properties[act.To]; exists && act.From != act.To {
		return &types.ValidationError{Field: "parameter", Value: act.To, Reason: "a parameter with this name already exists"}
	}

	w.Tools[idx].Parameters.RenameProperty(act.From, act.To)
	markDirty(item)
	return nil
}

func promptNames(prompts []types.Prompt) []string {
	names := make([]string, len(prompts))
	for i, p := range prompts {
		names[i] = p.Name
	}
	return names
}

func addPrompt(item *StateItem, act AddPrompt) error {
	w := &item.Workflow

	prompt := types.NewPrompt(act.Prompt)
	if prompt.Name == "" {
		prompt.Name = types.NextDefaultName(promptNames(w.Prompts), types.DefaultPromptName, " ")
	}
	if err := types.ValidateName("prompt", prompt.Name); err != nil {
		return err
	}
	if w.PromptIndex(prompt.Name) >= 0 {
		return &types.ValidationError{Field: "prompt", Value: prompt.Name, Reason: "a variable with this name already exists"}
	}

	w.Prompts = append(w.Prompts, prompt)

	if !act.FromCopilot {
		item.Selection = &Selection{Type: SelectionPrompt, Name: prompt.Name}
	}
	markDirty(item)
	return nil
}

func updatePrompt(item *StateItem, name string, patch types.PromptPatch, selectAfter bool) error {
	w := &item.Workflow
	idx := w.PromptIndex(name)
	if idx < 0 {
		return &types.ValidationError{Field: "prompt", Value: name, Reason: "variable does not exist"}
	}

	renamed := patch.Name != nil && *patch.Name != name
	if renamed {
		if err := types.ValidateName("prompt", *patch.Name); err != nil {
			return err
		}
		if w.PromptIndex(*patch.Name) >= 0 {
			return &types.ValidationError{Field: "prompt", Value: *patch.Name, Reason: "a variable with this name already exists"}
		}
	}

	patch.Apply(&w.Prompts[idx])

	if renamed {
		cascadePromptRename(item, name, w.Prompts[idx].Name)
	}
	if selectAfter {
		item.Selection = &Selection{Type: SelectionPrompt, Name: w.Prompts[idx].Name}
	}
	markDirty(item)
	return nil
}

func deletePrompt(item *StateItem, name string) error {
	w := &item.Workflow
	idx := w.PromptIndex(name)
	if idx >= 0 {
		w.Prompts = append(w.Prompts[:idx], w.Prompts[idx+1:]...)
	}

	rewriteMentions(&item.Workflow, types.MentionPrompt, name, "")
	clearSelectionIf(item, SelectionPrompt, name)
	markDirty(item)
	return nil
}

func pipelineNames(pipelines []types.Pipeline) []string {
	names := make([]string, len(pipelines))
	for i, p := range pipelines {
		names[i] = p.Name
	}
	return names
}

// validatePipelineName enforces uniqueness against both pipelines and
// agents, since pipeline names and agent names share the reference
// namespace used by StartAgent and mentions.
func validatePipelineName(w *types.Workflow, name string) error {
	if err := types.ValidateName("pipeline", name); err != nil {
		return err
	}
	if w.PipelineIndex(name) >= 0 {
		return &types.ValidationError{Field: "pipeline", Value: name, Reason: "a pipeline with this name already exists"}
	}
	if w.AgentIndex(name) >= 0 {
		return &types.ValidationError{Field: "pipeline", Value: name, Reason: "an agent with this name already exists"}
	}
	return nil
}

func addPipeline(item *StateItem, act AddPipeline) error {
	w := &item.Workflow

	pipeline := types.NewPipeline(act.Pipeline)
	if pipeline.Name == "" {
		pipeline.Name = types.NextDefaultName(pipelineNames(w.Pipelines), types.DefaultPipelineName, " ")
	}
	if err := validatePipelineName(w, pipeline.Name); err != nil {
		return err
	}

	if len(pipeline.Agents) == 0 {
		// A pipeline is never left with zero steps: manual creation gets
		// a default first step.
		step := pipeline.Name + " Step 1"
		pipeline.Agents = []string{step}
		if w.AgentIndex(step) < 0 {
			w.Agents = append(w.Agents, types.NewPipelineAgent(step, pipeline.Name, act.DefaultModel))
		}
	} else {
		// Creation from an automated collaborator names its members
		// up front; any that don't exist yet are created as steps.
		for _, member := range pipeline.Agents {
			if err := types.ValidateName("agent", member); err != nil {
				return err
			}
			if w.AgentIndex(member) < 0 {
				w.Agents = append(w.Agents, types.NewPipelineAgent(member, pipeline.Name, act.DefaultModel))
			}
		}
	}

	w.Pipelines = append(w.Pipelines, pipeline)

	if !act.FromCopilot && len(pipeline.Agents) > 0 {
		item.Selection = &Selection{Type: SelectionAgent, Name: pipeline.Agents[0]}
	}
	markDirty(item)
	return nil
}

func updatePipeline(item *StateItem, act UpdatePipeline) error {
	w := &item.Workflow
	idx := w.PipelineIndex(act.Name)
	if idx < 0 {
		return &types.ValidationError{Field: "pipeline", Value: act.Name, Reason: "pipeline does not exist"}
	}

	renamed := act.Pipeline.Name != nil && *act.Pipeline.Name != act.Name
	if renamed {
		if err := validatePipelineName(w, *act.Pipeline.Name); err != nil {
			return err
		}
	}
	if act.Pipeline.Agents != nil {
		// Members are not auto-created on update: the list may only
		// reference existing pipeline-type agents.
		for _, member := range *act.Pipeline.Agents {
			aidx := w.AgentIndex(member)
			if aidx < 0 {
				return &types.ValidationError{Field: "pipeline", Value: member, Reason: "member agent does not exist"}
			}
			if w.Agents[aidx].Type != types.AgentTypePipeline {
				return &types.ValidationError{Field: "pipeline", Value: member, Reason: "member agent is not a pipeline agent"}
			}
		}
	}

	act.Pipeline.Apply(&w.Pipelines[idx])

	item.Selection = &Selection{Type: SelectionPipeline, Name: w.Pipelines[idx].Name}
	markDirty(item)
	return nil
}

func deletePipeline(item *StateItem, name string) error {
	w := &item.Workflow
	idx := w.PipelineIndex(name)
	if idx < 0 {
		clearSelectionIf(item, SelectionPipeline, name)
		markDirty(item)
		return nil
	}

	// Deleting a pipeline deletes all its member agents, not just the
	// pipeline record.
	members := w.Pipelines[idx].Agents
	w.Pipelines = append(w.Pipelines[:idx], w.Pipelines[idx+1:]...)

	for _, member := range members {
		if aidx := w.AgentIndex(member); aidx >= 0 {
			w.Agents = append(w.Agents[:aidx], w.Agents[aidx+1:]...)
		}
		rewriteMentions(w, types.MentionAgent, member, "")
		removePipelineMember(w, member)
		clearSelectionIf(item, SelectionAgent, member)
	}
	reassignStartAgent(w)

	clearSelectionIf(item, SelectionPipeline, name)
	markDirty(item)
	return nil
}

func reorderAgents(item *StateItem, agents []types.Agent) error {
	next := make([]types.Agent, len(agents))
	for i, a := range agents {
		next[i] = a
		next[i].Order = i * 100
	}
	item.Workflow.Agents = next
	markDirty(item)
	return nil
}

func reorderPipelines(item *StateItem, pipelines []types.Pipeline) error {
	next := make([]types.Pipeline, len(pipelines))
	for i, p := range pipelines {
		next[i] = p.Clone()
		next[i].Order = i * 100
	}
	item.Workflow.Pipelines = next
	markDirty(item)
	return nil
}

// toggleAgent flips availability. It does not mark pending changes (a
// toggle is not an instructions edit) but bumps ChatKey so a live chat
// session re-reads the agent set immediately.
func toggleAgent(item *StateItem, name string) error {
	w := &item.Workflow
	idx := w.AgentIndex(name)
	if idx >= 0 {
		w.Agents[idx].Disabled = !w.Agents[idx].Disabled
	}
	item.ChatKey++
	return nil
}

func setMainAgent(item *StateItem, name string) error {
	if item.Workflow.AgentIndex(name) < 0 {
		return &types.ValidationError{Field: "agent", Value: name, Reason: "agent does not exist"}
	}
	item.Workflow.StartAgent = name
	markDirty(item)
	return nil
}
