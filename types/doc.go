// Package types defines the workflow document model: the Workflow root
// aggregate and its Agent, Tool, Prompt and Pipeline entities, plus the
// mention-token syntax used to cross-reference entities from free text.
//
// This is the lowest-level package in the module and has no internal
// dependencies. Entity names double as foreign keys: StartAgent, pipeline
// membership lists and inline mention tokens all refer to entities by
// name, which is why renames and deletes must cascade (see the editor
// package).
//
// All types are plain values. Clone methods produce deep copies so the
// editor can mutate a copy while the previous document stays intact.
package types
