package types

import (
	"fmt"
	"slices"
)

// ToolProperty describes one parameter in a tool's JSON-schema-like
// parameter block.
type ToolProperty struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// ToolParameters is the JSON-schema-like parameter block of a tool.
// Invariant: every entry in Required names a key present in Properties.
type ToolParameters struct {
	Type       string                  `json:"type"`
	Properties map[string]ToolProperty `json:"properties"`
	Required   []string                `json:"required"`
}

// NewToolParameters returns an empty object-typed parameter block.
func NewToolParameters() ToolParameters {
	return ToolParameters{
		Type:       "object",
		Properties: map[string]ToolProperty{},
		Required:   []string{},
	}
}

// Clone returns a deep copy.
func (p ToolParameters) Clone() ToolParameters {
	out := ToolParameters{Type: p.Type}
	if p.Properties != nil {
		out.Properties = make(map[string]ToolProperty, len(p.Properties))
		for k, v := range p.Properties {
			out.Properties[k] = v
		}
	}
	if p.Required != nil {
		out.Required = slices.Clone(p.Required)
	}
	return out
}

// Validate checks that Required only references keys present in Properties.
func (p ToolParameters) Validate() error {
	for _, name := range p.Required {
		if _, ok := p.Properties[name]; !ok {
			return &ValidationError{
				Field:  "parameters.required",
				Value:  name,
				Reason: "required parameter is not declared in properties",
			}
		}
	}
	return nil
}

// RenameProperty moves the property entry from oldName to newName and
// rewrites the Required list in the same step, so the two can never go
// out of sync. A missing oldName is a no-op.
func (p *ToolParameters) RenameProperty(oldName, newName string) {
	if p.Properties == nil {
		return
	}
	prop, ok := p.Properties[oldName]
	if !ok || oldName == newName {
		return
	}
	delete(p.Properties, oldName)
	p.Properties[newName] = prop
	for i, name := range p.Required {
		if name == oldName {
			p.Required[i] = newName
		}
	}
}

// Tool is a named callable unit. The provenance flags are mutually
// exclusive; a tool with none of them set is user-defined.
type Tool struct {
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	Parameters       ToolParameters `json:"parameters"`
	MockTool         bool           `json:"mockTool"`
	MockInstructions string         `json:"mockInstructions,omitempty"`
	IsMcp            bool           `json:"isMcp,omitempty"`
	IsComposio       bool           `json:"isComposio,omitempty"`
	IsLibrary        bool           `json:"isLibrary,omitempty"`
	IsWebhook        bool           `json:"isWebhook,omitempty"`
}

// Clone returns a deep copy.
func (t Tool) Clone() Tool {
	out := t
	out.Parameters = t.Parameters.Clone()
	return out
}

// Validate checks internal tool invariants.
func (t Tool) Validate() error {
	if err := t.Parameters.Validate(); err != nil {
		return fmt.Errorf("tool %q: %w", t.Name, err)
	}
	return nil
}

// ToolPatch is a partial update for a Tool. Nil fields are left untouched.
type ToolPatch struct {
	Name             *string
	Description      *string
	Parameters       *ToolParameters
	MockTool         *bool
	MockInstructions *string
	IsMcp            *bool
	IsComposio       *bool
	IsLibrary        *bool
	IsWebhook        *bool
}

// Apply merges the non-nil fields of the patch into the tool.
func (p ToolPatch) Apply(t *Tool) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Parameters != nil {
		t.Parameters = p.Parameters.Clone()
	}
	if p.MockTool != nil {
		t.MockTool = *p.MockTool
	}
	if p.MockInstructions != nil {
		t.MockInstructions = *p.MockInstructions
	}
	if p.IsMcp != nil {
		t.IsMcp = *p.IsMcp
	}
	if p.IsComposio != nil {
		t.IsComposio = *p.IsComposio
	}
	if p.IsLibrary != nil {
		t.IsLibrary = *p.IsLibrary
	}
	if p.IsWebhook != nil {
		t.IsWebhook = *p.IsWebhook
	}
}
