package editor

import "github.com/rowboatlabs/workflowkit/types"

// Action is the closed set of editor actions. Each variant carries its
// own payload; Engine.Apply dispatches on the concrete type.
type Action interface {
	// ActionName returns the stable name used for logging and metrics.
	ActionName() string
}

// AddAgent appends a new agent, default-filled then overridden by the
// patch. FromCopilot suppresses the selection change for edits that
// originate from an automated collaborator rather than the user.
type AddAgent struct {
	Agent       types.AgentPatch
	FromCopilot bool
}

// UpdateAgent merges the patch into the named agent and selects it. A
// name change cascades through every reference to the agent.
type UpdateAgent struct {
	Name  string
	Agent types.AgentPatch
}

// UpdateAgentNoSelect is UpdateAgent without the selection change.
type UpdateAgentNoSelect struct {
	Name  string
	Agent types.AgentPatch
}

// DeleteAgent removes the named agent and cascades: mentions stripped,
// pipeline membership removed, start agent reassigned.
type DeleteAgent struct {
	Name string
}

// AddTool appends a new tool.
type AddTool struct {
	Tool        types.ToolPatch
	FromCopilot bool
}

// UpdateTool merges the patch into the named tool and selects it.
type UpdateTool struct {
	Name string
	Tool types.ToolPatch
}

// UpdateToolNoSelect is UpdateTool without the selection change.
type UpdateToolNoSelect struct {
	Name string
	Tool types.ToolPatch
}

// DeleteTool removes the named tool and strips its mentions.
type DeleteTool struct {
	Name string
}

// RenameToolParam renames one parameter of the named tool, moving the
// property entry and its required-list entry in a single step.
type RenameToolParam struct {
	Tool string
	From string
	To   string
}

// AddPrompt appends a new prompt ("Variable").
type AddPrompt struct {
	Prompt      types.PromptPatch
	FromCopilot bool
}

// UpdatePrompt merges the patch into the named prompt and selects it.
type UpdatePrompt struct {
	Name   string
	Prompt types.PromptPatch
}

// UpdatePromptNoSelect is UpdatePrompt without the selection change.
type UpdatePromptNoSelect struct {
	Name   string
	Prompt types.PromptPatch
}

// DeletePrompt removes the named prompt and strips its mentions.
type DeletePrompt struct {
	Name string
}

// AddPipeline appends a new pipeline. With no member agents a default
// first step is auto-created; with explicit members any missing agents
// are auto-created as pipeline steps using DefaultModel.
type AddPipeline struct {
	Pipeline     types.PipelinePatch
	DefaultModel string
	FromCopilot  bool
}

// UpdatePipeline merges the patch into the named pipeline and selects it.
type UpdatePipeline struct {
	Name     string
	Pipeline types.PipelinePatch
}

// DeletePipeline removes the named pipeline AND all of its member agents.
type DeletePipeline struct {
	Name string
}

// ReorderAgents replaces the agent sequence wholesale and reassigns Order
// in increments of 100.
type ReorderAgents struct {
	Agents []types.Agent
}

// ReorderPipelines replaces the pipeline sequence wholesale and reassigns
// Order in increments of 100.
type ReorderPipelines struct {
	Pipelines []types.Pipeline
}

// ToggleAgent flips the agent's Disabled flag. It bumps ChatKey so live
// chat sessions pick the change up immediately, but deliberately does not
// mark pending changes.
type ToggleAgent struct {
	Name string
}

// SetMainAgent points StartAgent at the named agent.
type SetMainAgent struct {
	Name string
}

// UpdateWorkflowName renames the workflow document itself.
type UpdateWorkflowName struct {
	Name string
}

// Select focuses an entity in the UI. Not recorded in history.
type Select struct {
	Type SelectionType
	Name string
}

// Unselect clears the selection. Not recorded in history.
type Unselect struct{}

// Undo replays the previous inverse patch. No-op at index zero.
type Undo struct{}

// Redo replays the next forward patch. No-op at the end of history.
type Redo struct{}

// RestoreState hard-resets the editor to the given present state and
// clears all history. Used when an externally fetched document (draft or
// live) supersedes the in-memory one.
type RestoreState struct {
	State StateItem
}

// SetSaving marks a save as started or settled. Settling stamps
// LastUpdatedAt.
type SetSaving struct {
	Saving bool
}

// SetPublishing toggles the publishing-in-progress flag.
type SetPublishing struct {
	Publishing bool
}

// SetLive switches between the published (read-mostly) and draft views.
type SetLive struct {
	Live bool
}

func (AddAgent) ActionName() string            { return "add_agent" }
func (UpdateAgent) ActionName() string         { return "update_agent" }
func (UpdateAgentNoSelect) ActionName() string { return "update_agent_no_select" }
func (DeleteAgent) ActionName() string         { return "delete_agent" }
func (AddTool) ActionName() string             { return "add_tool" }
func (UpdateTool) ActionName() string          { return "update_tool" }
func (UpdateToolNoSelect) ActionName() string  { return "update_tool_no_select" }
func (DeleteTool) ActionName() string          { return "delete_tool" }
func (RenameToolParam) ActionName() string     { return "rename_tool_param" }
func (AddPrompt) ActionName() string           { return "add_prompt" }
func (UpdatePrompt) ActionName() string        { return "update_prompt" }
func (UpdatePromptNoSelect) ActionName() string {
	return "update_prompt_no_select"
}
func (DeletePrompt) ActionName() string       { return "delete_prompt" }
func (AddPipeline) ActionName() string        { return "add_pipeline" }
func (UpdatePipeline) ActionName() string     { return "update_pipeline" }
func (DeletePipeline) ActionName() string     { return "delete_pipeline" }
func (ReorderAgents) ActionName() string      { return "reorder_agents" }
func (ReorderPipelines) ActionName() string   { return "reorder_pipelines" }
func (ToggleAgent) ActionName() string        { return "toggle_agent" }
func (SetMainAgent) ActionName() string       { return "set_main_agent" }
func (UpdateWorkflowName) ActionName() string { return "update_workflow_name" }
func (Select) ActionName() string             { return "select" }
func (Unselect) ActionName() string           { return "unselect" }
func (Undo) ActionName() string               { return "undo" }
func (Redo) ActionName() string               { return "redo" }
func (RestoreState) ActionName() string       { return "restore_state" }
func (SetSaving) ActionName() string          { return "set_saving" }
func (SetPublishing) ActionName() string      { return "set_publishing" }
func (SetLive) ActionName() string            { return "set_live" }
