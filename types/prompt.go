package types

// PromptType distinguishes secret-like base prompts ("Variables" in the
// UI) from plain reusable prompts. Base prompts are redacted on export.
type PromptType string

const (
	PromptTypeBase   PromptType = "base_prompt"
	PromptTypePrompt PromptType = "prompt"
)

// Prompt is a named reusable text fragment. The Prompt field may embed
// mention tokens referencing agents, tools or other prompts.
type Prompt struct {
	Name   string     `json:"name"`
	Type   PromptType `json:"type"`
	Prompt string     `json:"prompt"`
}

// PromptPatch is a partial update for a Prompt. Nil fields are left
// untouched.
type PromptPatch struct {
	Name   *string
	Type   *PromptType
	Prompt *string
}

// Apply merges the non-nil fields of the patch into the prompt.
func (p PromptPatch) Apply(pr *Prompt) {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Type != nil {
		pr.Type = *p.Type
	}
	if p.Prompt != nil {
		pr.Prompt = *p.Prompt
	}
}
