package generator

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a creative story writer for an interactive story game."

// ChatMessage is one turn of an OpenAI-compatible chat request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BuildMessages renders the input as chat messages for chat-completion APIs.
func BuildMessages(input GenerationInput) []ChatMessage {
	var b strings.Builder
	b.WriteString("Generate engaging story content based on:\n\n")
	fmt.Fprintf(&b, "User Request: %s\n\n", input.UserInput)

	if len(input.Blueprint) > 0 {
		fmt.Fprintf(&b, "Blueprint: %v\n\n", input.Blueprint)
	}

	return []ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: b.String()},
	}
}

// BuildPrompt renders the input as a flat prompt for non-chat APIs.
func BuildPrompt(input GenerationInput) string {
	var b strings.Builder
	b.WriteString("You are a creative story writer.\n\n")
	fmt.Fprintf(&b, "User Request: %s\n\n", input.UserInput)

	if len(input.Blueprint) > 0 {
		fmt.Fprintf(&b, "Blueprint: %v\n\n", input.Blueprint)
	}

	b.WriteString("Generate engaging story content:")
	return b.String()
}

// BuildFullPrompt renders the complete input, including characters and story
// arc, for backends that take a single long-form prompt.
func BuildFullPrompt(input GenerationInput) string {
	parts := []string{
		systemPrompt,
		"Generate engaging, immersive story content based on the following:",
		"",
	}

	if input.UserInput != "" {
		parts = append(parts, fmt.Sprintf("User Request: %s", input.UserInput), "")
	}
	if len(input.Blueprint) > 0 {
		parts = append(parts, fmt.Sprintf("Story Blueprint: %v", input.Blueprint), "")
	}
	if len(input.Characters) > 0 {
		parts = append(parts, fmt.Sprintf("Characters: %v", input.Characters), "")
	}
	if len(input.StoryArc) > 0 {
		parts = append(parts, fmt.Sprintf("Story Arc: %v", input.StoryArc), "")
	}

	parts = append(parts, "Generated Story:")
	return strings.Join(parts, "\n")
}
