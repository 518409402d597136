package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Default values applied when creating entities. Callers override them by
// supplying patch fields.
const (
	DefaultAgentName    = "New agent"
	DefaultToolName     = "new_tool"
	DefaultPromptName   = "New Variable"
	DefaultPipelineName = "New pipeline"

	// DefaultPipelineAgentModel is used for agents auto-created as
	// pipeline steps when the caller does not supply a model.
	DefaultPipelineAgentModel = "gpt-4.1"

	DefaultRagK                   = 3
	DefaultMaxCallsPerParentAgent = 3
)

// NextDefaultName generates a collision-free default name. If base is
// unused it is returned as-is; otherwise base is suffixed (with sep) by
// N = 1 + count of existing names that already start with base.
func NextDefaultName(existing []string, base, sep string) string {
	taken := false
	prefixed := 0
	for _, name := range existing {
		if name == base {
			taken = true
		}
		if strings.HasPrefix(name, base) {
			prefixed++
		}
	}
	if !taken {
		return base
	}
	return base + sep + strconv.Itoa(prefixed+1)
}

// NewAgent returns an agent with defaults applied, overridden by the
// non-nil fields of the patch.
func NewAgent(patch AgentPatch) Agent {
	a := Agent{
		Type:                   AgentTypeConversation,
		ToggleAble:             true,
		RagReturnType:          RagReturnTypeChunks,
		RagK:                   DefaultRagK,
		ControlType:            ControlTypeRetain,
		OutputVisibility:       OutputVisibilityUserFacing,
		MaxCallsPerParentAgent: DefaultMaxCallsPerParentAgent,
	}
	patch.Apply(&a)
	return a
}

// NewPipelineAgent returns an agent defaulted as a step of the named
// pipeline: pipeline-typed, internal output, control relinquished to the
// parent after each step.
func NewPipelineAgent(name, pipelineName, model string) Agent {
	if model == "" {
		model = DefaultPipelineAgentModel
	}
	return Agent{
		Name:                   name,
		Type:                   AgentTypePipeline,
		Description:            fmt.Sprintf("Agent for %s pipeline", pipelineName),
		Instructions:           fmt.Sprintf("You are part of the %s pipeline. Focus on your specific role.", pipelineName),
		Model:                  model,
		ToggleAble:             true,
		RagReturnType:          RagReturnTypeChunks,
		RagK:                   DefaultRagK,
		ControlType:            ControlTypeRelinquishToParent,
		OutputVisibility:       OutputVisibilityInternal,
		MaxCallsPerParentAgent: DefaultMaxCallsPerParentAgent,
	}
}

// NewTool returns a tool with defaults applied, overridden by the patch.
func NewTool(patch ToolPatch) Tool {
	t := Tool{
		Parameters: NewToolParameters(),
	}
	patch.Apply(&t)
	return t
}

// NewPrompt returns a prompt with defaults applied, overridden by the
// patch.
func NewPrompt(patch PromptPatch) Prompt {
	p := Prompt{
		Type: PromptTypeBase,
	}
	patch.Apply(&p)
	return p
}

// NewPipeline returns a pipeline with defaults applied, overridden by the
// patch.
func NewPipeline(patch PipelinePatch) Pipeline {
	p := Pipeline{
		Agents: []string{},
	}
	patch.Apply(&p)
	return p
}

// Ptr returns a pointer to v. It keeps patch literals short:
//
//	types.AgentPatch{Name: types.Ptr("Helper")}
func Ptr[T any](v T) *T {
	return &v
}
