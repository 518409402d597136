package editor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowboatlabs/workflowkit/types"
)

func TestExportJSON(t *testing.T) {
	w := testWorkflow()
	w.Prompts = append(w.Prompts, types.Prompt{
		Name:   "Style Guide",
		Type:   types.PromptTypePrompt,
		Prompt: "Write tersely.",
	})

	out, err := ExportJSON(w)
	require.NoError(t, err)

	var decoded types.Workflow
	require.NoError(t, json.Unmarshal(out, &decoded))

	// Base prompts are redacted, plain prompts exported verbatim.
	require.Len(t, decoded.Prompts, 2)
	assert.Equal(t, RedactedPromptValue, decoded.Prompts[0].Prompt)
	assert.Equal(t, "Write tersely.", decoded.Prompts[1].Prompt)

	assert.Equal(t, w.Name, decoded.Name)
	assert.Equal(t, w.StartAgent, decoded.StartAgent)
	assert.Len(t, decoded.Agents, len(w.Agents))

	// The source document is untouched.
	assert.Equal(t, "We are Acme.", w.Prompts[0].Prompt)
}
