package types

import "slices"

// Workflow is the root aggregate for one project's assistant
// configuration. Entity order within each slice is significant: it
// determines execution and display order, and is only changed by explicit
// reorder operations.
//
// StartAgent holds the name of the entry-point agent. An empty string
// means "no start agent"; callers must treat it as such, not as an error.
type Workflow struct {
	ID            string     `json:"id,omitempty"`
	Name          string     `json:"name,omitempty"`
	StartAgent    string     `json:"startAgent"`
	Agents        []Agent    `json:"agents"`
	Tools         []Tool     `json:"tools"`
	Prompts       []Prompt   `json:"prompts"`
	Pipelines     []Pipeline `json:"pipelines"`
	LastUpdatedAt string     `json:"lastUpdatedAt"`
}

// Clone returns a deep copy of the workflow.
func (w Workflow) Clone() Workflow {
	out := w
	out.Agents = slices.Clone(w.Agents)
	if w.Tools != nil {
		out.Tools = make([]Tool, len(w.Tools))
		for i, t := range w.Tools {
			out.Tools[i] = t.Clone()
		}
	}
	out.Prompts = slices.Clone(w.Prompts)
	if w.Pipelines != nil {
		out.Pipelines = make([]Pipeline, len(w.Pipelines))
		for i, p := range w.Pipelines {
			out.Pipelines[i] = p.Clone()
		}
	}
	return out
}

// AgentIndex returns the index of the named agent, or -1.
func (w *Workflow) AgentIndex(name string) int {
	return slices.IndexFunc(w.Agents, func(a Agent) bool { return a.Name == name })
}

// ToolIndex returns the index of the named tool, or -1.
func (w *Workflow) ToolIndex(name string) int {
	return slices.IndexFunc(w.Tools, func(t Tool) bool { return t.Name == name })
}

// PromptIndex returns the index of the named prompt, or -1.
func (w *Workflow) PromptIndex(name string) int {
	return slices.IndexFunc(w.Prompts, func(p Prompt) bool { return p.Name == name })
}

// PipelineIndex returns the index of the named pipeline, or -1.
func (w *Workflow) PipelineIndex(name string) int {
	return slices.IndexFunc(w.Pipelines, func(p Pipeline) bool { return p.Name == name })
}
