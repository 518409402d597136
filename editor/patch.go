package editor

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PatchOp sets one section of the state item to a recorded JSON value.
// A forward patch carries post-action values, the matching inverse patch
// pre-action values; applying either replaces the named section
// wholesale, so replay is exact without recomputation.
type PatchOp struct {
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value"`
}

// Patch is the list of section ops for one state transition.
type Patch []PatchOp

// Section paths. Only sections a history-recorded action can touch are
// listed; flags like Saving or IsLive are driven by non-history actions
// and never appear in patches.
const (
	pathWorkflowName        = "workflow.name"
	pathStartAgent          = "workflow.startAgent"
	pathAgents              = "workflow.agents"
	pathTools               = "workflow.tools"
	pathPrompts             = "workflow.prompts"
	pathPipelines           = "workflow.pipelines"
	pathSelection           = "selection"
	pathPendingChanges      = "pendingChanges"
	pathChatKey             = "chatKey"
	pathInstructionsChanged = "agentInstructionsChanged"
	pathLastUpdatedAt       = "lastUpdatedAt"
)

var sectionPaths = []string{
	pathWorkflowName,
	pathStartAgent,
	pathAgents,
	pathTools,
	pathPrompts,
	pathPipelines,
	pathSelection,
	pathPendingChanges,
	pathChatKey,
	pathInstructionsChanged,
	pathLastUpdatedAt,
}

func marshalSection(item *StateItem, path string) (json.RawMessage, error) {
	var v any
	switch path {
	case pathWorkflowName:
		v = item.Workflow.Name
	case pathStartAgent:
		v = item.Workflow.StartAgent
	case pathAgents:
		v = item.Workflow.Agents
	case pathTools:
		v = item.Workflow.Tools
	case pathPrompts:
		v = item.Workflow.Prompts
	case pathPipelines:
		v = item.Workflow.Pipelines
	case pathSelection:
		v = item.Selection
	case pathPendingChanges:
		v = item.PendingChanges
	case pathChatKey:
		v = item.ChatKey
	case pathInstructionsChanged:
		v = item.AgentInstructionsChanged
	case pathLastUpdatedAt:
		v = item.LastUpdatedAt
	default:
		return nil, fmt.Errorf("editor: unknown patch path %q", path)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("editor: marshal section %q: %w", path, err)
	}
	return raw, nil
}

func setSection(item *StateItem, op PatchOp) error {
	var target any
	switch op.Path {
	case pathWorkflowName:
		target = &item.Workflow.Name
	case pathStartAgent:
		target = &item.Workflow.StartAgent
	case pathAgents:
		item.Workflow.Agents = nil
		target = &item.Workflow.Agents
	case pathTools:
		item.Workflow.Tools = nil
		target = &item.Workflow.Tools
	case pathPrompts:
		item.Workflow.Prompts = nil
		target = &item.Workflow.Prompts
	case pathPipelines:
		item.Workflow.Pipelines = nil
		target = &item.Workflow.Pipelines
	case pathSelection:
		item.Selection = nil
		target = &item.Selection
	case pathPendingChanges:
		target = &item.PendingChanges
	case pathChatKey:
		target = &item.ChatKey
	case pathInstructionsChanged:
		target = &item.AgentInstructionsChanged
	case pathLastUpdatedAt:
		target = &item.LastUpdatedAt
	default:
		return fmt.Errorf("editor: unknown patch path %q", op.Path)
	}
	if err := json.Unmarshal(op.Value, target); err != nil {
		return fmt.Errorf("editor: apply section %q: %w", op.Path, err)
	}
	return nil
}

// diffState computes the forward and inverse patches between two state
// items. Sections with identical encodings produce no ops. Map keys are
// marshaled in sorted order, so the encoding is deterministic and the
// comparison exact.
func diffState(before, after *StateItem) (forward, inverse Patch, err error) {
	for _, path := range sectionPaths {
		b, err := marshalSection(before, path)
		if err != nil {
			return nil, nil, err
		}
		a, err := marshalSection(after, path)
		if err != nil {
			return nil, nil, err
		}
		if bytes.Equal(b, a) {
			continue
		}
		forward = append(forward, PatchOp{Path: path, Value: a})
		inverse = append(inverse, PatchOp{Path: path, Value: b})
	}
	return forward, inverse, nil
}

// applyPatch replays a patch onto the state item in place.
func applyPatch(item *StateItem, p Patch) error {
	for _, op := range p {
		if err := setSection(item, op); err != nil {
			return err
		}
	}
	return nil
}
