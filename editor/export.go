package editor

import (
	"encoding/json"
	"fmt"

	"github.com/rowboatlabs/workflowkit/types"
)

// RedactedPromptValue replaces base-prompt bodies in exports. Base
// prompts often embed deployment-specific context that must not travel
// with a shared template.
const RedactedPromptValue = "<needs to be added>"

// ExportJSON renders the workflow as a shareable, indented JSON
// template. Base-prompt bodies are redacted; the input is not modified.
func ExportJSON(w types.Workflow) ([]byte, error) {
	cp := w.Clone()
	for i := range cp.Prompts {
		if cp.Prompts[i].Type == types.PromptTypeBase {
			cp.Prompts[i].Prompt = RedactedPromptValue
		}
	}
	out, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("editor: export workflow: %w", err)
	}
	return out, nil
}
