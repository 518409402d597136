package editor

import "github.com/rowboatlabs/workflowkit/types"

// SelectionType is the kind of entity currently focused in the editor.
type SelectionType string

const (
	SelectionAgent      SelectionType = "agent"
	SelectionTool       SelectionType = "tool"
	SelectionPrompt     SelectionType = "prompt"
	SelectionDataSource SelectionType = "datasource"
	SelectionPipeline   SelectionType = "pipeline"
	SelectionVisualise  SelectionType = "visualise"
)

// Selection identifies the focused entity. A nil *Selection means
// nothing is focused.
type Selection struct {
	Type SelectionType `json:"type"`
	Name string        `json:"name"`
}

// StateItem is the present editor state: the document plus the UI-facing
// flags that travel with it through history.
//
// ChatKey is a monotonic counter bumped on every document change;
// consumers use it to force-remount dependent views such as a live chat
// session.
type StateItem struct {
	Workflow                 types.Workflow `json:"workflow"`
	Selection                *Selection     `json:"selection"`
	Saving                   bool           `json:"saving"`
	Publishing               bool           `json:"publishing"`
	PendingChanges           bool           `json:"pendingChanges"`
	ChatKey                  int            `json:"chatKey"`
	LastUpdatedAt            string         `json:"lastUpdatedAt"`
	IsLive                   bool           `json:"isLive"`
	AgentInstructionsChanged bool           `json:"agentInstructionsChanged"`
}

// Clone returns a deep copy of the state item.
func (s StateItem) Clone() StateItem {
	out := s
	out.Workflow = s.Workflow.Clone()
	if s.Selection != nil {
		sel := *s.Selection
		out.Selection = &sel
	}
	return out
}

// State is the full history state handed to and returned by
// Engine.Apply. Patches and InversePatches are parallel: entry i of each
// describes the same transition, forward and backward. CurrentIndex
// points one past the last applied patch.
//
// Patch slices are shared between successive State values and must be
// treated as immutable; Apply copies before appending.
type State struct {
	Present        StateItem
	Patches        []Patch
	InversePatches []Patch
	CurrentIndex   int
}

// NewState builds the initial editor state around a fetched document.
func NewState(w types.Workflow, isLive bool) State {
	return State{
		Present: StateItem{
			Workflow:      w,
			LastUpdatedAt: w.LastUpdatedAt,
			IsLive:        isLive,
		},
	}
}

// CanUndo reports whether an undo would change state.
func (s State) CanUndo() bool {
	return s.CurrentIndex > 0
}

// CanRedo reports whether a redo would change state.
func (s State) CanRedo() bool {
	return s.CurrentIndex < len(s.Patches)
}
