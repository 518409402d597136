package types

import "slices"

// Pipeline is an ordered chain of pipeline-type agents executed one after
// another, each agent's output feeding the next agent's input. Agents
// holds member agent names; Name must not collide with any agent name or
// other pipeline name.
type Pipeline struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Agents      []string `json:"agents"`
	Order       int      `json:"order"`
}

// Clone returns a deep copy.
func (p Pipeline) Clone() Pipeline {
	out := p
	out.Agents = slices.Clone(p.Agents)
	return out
}

// PipelinePatch is a partial update for a Pipeline. Nil fields are left
// untouched.
type PipelinePatch struct {
	Name        *string
	Description *string
	Agents      *[]string
	Order       *int
}

// Apply merges the non-nil fields of the patch into the pipeline.
func (p PipelinePatch) Apply(pl *Pipeline) {
	if p.Name != nil {
		pl.Name = *p.Name
	}
	if p.Description != nil {
		pl.Description = *p.Description
	}
	if p.Agents != nil {
		pl.Agents = slices.Clone(*p.Agents)
	}
	if p.Order != nil {
		pl.Order = *p.Order
	}
}
