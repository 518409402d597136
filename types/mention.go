package types

import "strings"

// MentionKind is the entity kind embedded in a mention token.
type MentionKind string

const (
	MentionAgent  MentionKind = "agent"
	MentionTool   MentionKind = "tool"
	MentionPrompt MentionKind = "prompt"
)

// Mention returns the inline marker referencing an entity by kind and
// name, as embedded in Agent.Instructions and Prompt.Prompt:
//
//	[@agent:Credit Check](#mention)
//
// The full marker including its delimiters is what gets matched during
// rewrites, so a name is never confused with a superset or substring of
// another name.
func Mention(kind MentionKind, name string) string {
	return "[@" + string(kind) + ":" + name + "](#mention)"
}

// ReplaceMention rewrites every marker for (kind, oldName) in text. An
// empty newName strips the marker. Text without the marker is returned
// unchanged; the operation is total.
func ReplaceMention(text string, kind MentionKind, oldName, newName string) string {
	replacement := ""
	if newName != "" {
		replacement = Mention(kind, newName)
	}
	return strings.ReplaceAll(text, Mention(kind, oldName), replacement)
}
