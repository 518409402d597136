package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramsFixture() ToolParameters {
	return ToolParameters{
		Type: "object",
		Properties: map[string]ToolProperty{
			"order_id": {Type: "string", Description: "order identifier"},
			"limit":    {Type: "integer"},
		},
		Required: []string{"order_id"},
	}
}

func TestToolParametersValidate(t *testing.T) {
	p := paramsFixture()
	require.NoError(t, p.Validate())

	p.Required = append(p.Required, "missing")
	err := p.Validate()
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "missing", verr.Value)
}

func TestRenameProperty(t *testing.T) {
	t.Run("MovesPropertyAndRequired", func(t *testing.T) {
		p := paramsFixture()
		p.RenameProperty("order_id", "order_ref")

		_, oldExists := p.Properties["order_id"]
		assert.False(t, oldExists)
		prop, newExists := p.Properties["order_ref"]
		require.True(t, newExists)
		assert.Equal(t, "order identifier", prop.Description)
		assert.Equal(t, []string{"order_ref"}, p.Required)
		require.NoError(t, p.Validate())
	})

	t.Run("OptionalParamStaysOptional", func(t *testing.T) {
		p := paramsFixture()
		p.RenameProperty("limit", "max_results")

		assert.Equal(t, []string{"order_id"}, p.Required)
		_, ok := p.Properties["max_results"]
		assert.True(t, ok)
	})

	t.Run("MissingIsNoop", func(t *testing.T) {
		p := paramsFixture()
		p.RenameProperty("nope", "whatever")
		assert.Equal(t, paramsFixture(), p)
	})
}

func TestToolClone(t *testing.T) {
	tool := Tool{Name: "lookup", Parameters: paramsFixture()}
	cp := tool.Clone()

	cp.Parameters.Properties["order_id"] = ToolProperty{Type: "number"}
	cp.Parameters.Required[0] = "changed"

	assert.Equal(t, "string", tool.Parameters.Properties["order_id"].Type)
	assert.Equal(t, "order_id", tool.Parameters.Required[0])
}

func TestWorkflowClone(t *testing.T) {
	w := Workflow{
		StartAgent: "Bot",
		Agents:     []Agent{{Name: "Bot", Instructions: "hi"}},
		Tools:      []Tool{{Name: "lookup", Parameters: paramsFixture()}},
		Prompts:    []Prompt{{Name: "Greeting", Type: PromptTypeBase, Prompt: "hello"}},
		Pipelines:  []Pipeline{{Name: "Enrich", Agents: []string{"Step 1"}}},
	}

	cp := w.Clone()
	cp.Agents[0].Instructions = "changed"
	cp.Tools[0].Parameters.Required[0] = "changed"
	cp.Pipelines[0].Agents[0] = "changed"

	assert.Equal(t, "hi", w.Agents[0].Instructions)
	assert.Equal(t, "order_id", w.Tools[0].Parameters.Required[0])
	assert.Equal(t, "Step 1", w.Pipelines[0].Agents[0])
}
