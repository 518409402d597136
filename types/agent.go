package types

// AgentType distinguishes conversational agents from pipeline steps.
type AgentType string

const (
	// AgentTypeConversation is a user-facing conversational agent.
	AgentTypeConversation AgentType = "conversation"
	// AgentTypePipeline is a step inside a pipeline; it is executed
	// sequentially and is never user-facing.
	AgentTypePipeline AgentType = "pipeline"
)

// OutputVisibility controls whether an agent's output is shown to the user.
type OutputVisibility string

const (
	OutputVisibilityUserFacing OutputVisibility = "user_facing"
	OutputVisibilityInternal   OutputVisibility = "internal"
)

// ControlType determines who regains control after the agent finishes.
type ControlType string

const (
	ControlTypeRetain             ControlType = "retain"
	ControlTypeRelinquishToParent ControlType = "relinquish_to_parent"
)

// RagReturnType selects what a RAG lookup returns to the agent.
type RagReturnType string

const (
	RagReturnTypeChunks  RagReturnType = "chunks"
	RagReturnTypeContent RagReturnType = "content"
)

// Agent is a named behavior unit. Name is the unique key within
// Workflow.Agents and is referenced by StartAgent, pipeline membership
// lists and [@agent:Name](#mention) tokens in free text.
type Agent struct {
	Name                   string           `json:"name"`
	Type                   AgentType        `json:"type"`
	Description            string           `json:"description"`
	Disabled               bool             `json:"disabled"`
	Instructions           string           `json:"instructions"`
	Model                  string           `json:"model"`
	Locked                 bool             `json:"locked"`
	ToggleAble             bool             `json:"toggleAble"`
	RagReturnType          RagReturnType    `json:"ragReturnType"`
	RagK                   int              `json:"ragK"`
	ControlType            ControlType      `json:"controlType"`
	OutputVisibility       OutputVisibility `json:"outputVisibility"`
	MaxCallsPerParentAgent int              `json:"maxCallsPerParentAgent"`
	Order                  int              `json:"order"`
}

// AgentPatch is a partial update for an Agent. Nil fields are left
// untouched when the patch is applied.
type AgentPatch struct {
	Name                   *string
	Type                   *AgentType
	Description            *string
	Disabled               *bool
	Instructions           *string
	Model                  *string
	Locked                 *bool
	ToggleAble             *bool
	RagReturnType          *RagReturnType
	RagK                   *int
	ControlType            *ControlType
	OutputVisibility       *OutputVisibility
	MaxCallsPerParentAgent *int
	Order                  *int
}

// Apply merges the non-nil fields of the patch into the agent.
func (p AgentPatch) Apply(a *Agent) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Disabled != nil {
		a.Disabled = *p.Disabled
	}
	if p.Instructions != nil {
		a.Instructions = *p.Instructions
	}
	if p.Model != nil {
		a.Model = *p.Model
	}
	if p.Locked != nil {
		a.Locked = *p.Locked
	}
	if p.ToggleAble != nil {
		a.ToggleAble = *p.ToggleAble
	}
	if p.RagReturnType != nil {
		a.RagReturnType = *p.RagReturnType
	}
	if p.RagK != nil {
		a.RagK = *p.RagK
	}
	if p.ControlType != nil {
		a.ControlType = *p.ControlType
	}
	if p.OutputVisibility != nil {
		a.OutputVisibility = *p.OutputVisibility
	}
	if p.MaxCallsPerParentAgent != nil {
		a.MaxCallsPerParentAgent = *p.MaxCallsPerParentAgent
	}
	if p.Order != nil {
		a.Order = *p.Order
	}
}
