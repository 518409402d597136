package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextDefaultName(t *testing.T) {
	t.Run("BaseUnused", func(t *testing.T) {
		got := NextDefaultName([]string{"Support", "Billing"}, "New agent", " ")
		assert.Equal(t, "New agent", got)
	})

	t.Run("BaseTaken", func(t *testing.T) {
		got := NextDefaultName([]string{"New agent"}, "New agent", " ")
		assert.Equal(t, "New agent 2", got)
	})

	t.Run("CountsPrefixMatches", func(t *testing.T) {
		existing := []string{"New agent", "New agent 2", "Billing"}
		got := NextDefaultName(existing, "New agent", " ")
		assert.Equal(t, "New agent 3", got)
	})

	t.Run("SnakeCaseSeparator", func(t *testing.T) {
		got := NextDefaultName([]string{"new_tool"}, "new_tool", "_")
		assert.Equal(t, "new_tool_2", got)
	})
}

func TestNewAgentDefaults(t *testing.T) {
	a := NewAgent(AgentPatch{Name: Ptr("Support")})

	assert.Equal(t, "Support", a.Name)
	assert.Equal(t, AgentTypeConversation, a.Type)
	assert.False(t, a.Disabled)
	assert.True(t, a.ToggleAble)
	assert.Equal(t, RagReturnTypeChunks, a.RagReturnType)
	assert.Equal(t, 3, a.RagK)
	assert.Equal(t, ControlTypeRetain, a.ControlType)
	assert.Equal(t, OutputVisibilityUserFacing, a.OutputVisibility)
	assert.Equal(t, 3, a.MaxCallsPerParentAgent)
}

func TestNewAgentOverrides(t *testing.T) {
	a := NewAgent(AgentPatch{
		Name:             Ptr("Step"),
		Type:             Ptr(AgentTypePipeline),
		OutputVisibility: Ptr(OutputVisibilityInternal),
		RagK:             Ptr(5),
	})

	assert.Equal(t, AgentTypePipeline, a.Type)
	assert.Equal(t, OutputVisibilityInternal, a.OutputVisibility)
	assert.Equal(t, 5, a.RagK)
	// Untouched defaults survive the patch.
	assert.Equal(t, ControlTypeRetain, a.ControlType)
}

func TestNewPipelineAgent(t *testing.T) {
	a := NewPipelineAgent("Enrich Step 1", "Enrich", "")

	assert.Equal(t, AgentTypePipeline, a.Type)
	assert.Equal(t, OutputVisibilityInternal, a.OutputVisibility)
	assert.Equal(t, ControlTypeRelinquishToParent, a.ControlType)
	assert.Equal(t, DefaultPipelineAgentModel, a.Model)
}

func TestNewToolDefaults(t *testing.T) {
	tool := NewTool(ToolPatch{Name: Ptr("lookup_order")})

	assert.Equal(t, "object", tool.Parameters.Type)
	assert.NotNil(t, tool.Parameters.Properties)
	assert.Empty(t, tool.Parameters.Required)
	assert.False(t, tool.MockTool)
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("agent", "Credit Check"))
	assert.Error(t, ValidateName("agent", ""))
	assert.Error(t, ValidateName("agent", "bad[name]"))
	assert.Error(t, ValidateName("agent", "bad@name"))
	assert.Error(t, ValidateName("agent", "two\nlines"))
}
