package chat

import (
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// MessagePart is one fragment of a structured UI message.
type MessagePart struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Message is one turn of the conversation as the widget sends it:
// either a plain content string or a parts array.
type Message struct {
	Role    string        `json:"role"`
	Content string        `json:"content,omitempty"`
	Parts   []MessagePart `json:"parts,omitempty"`
}

// flatten returns the message text, joining text parts when no plain
// content string is present.
func (m Message) flatten() string {
	if m.Content != "" {
		return m.Content
	}
	var b strings.Builder
	for _, p := range m.Parts {
		if p.Type == "text" && p.Text != "" {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

// toModelMessages converts UI messages into the upstream wire format
// and prepends the fixed system instruction.
func toModelMessages(msgs []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(msgs)+1)
	out = append(out, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, m := range msgs {
		out = append(out, openai.ChatCompletionMessage{
			Role:    modelRole(m.Role),
			Content: m.flatten(),
		})
	}
	return out
}

func modelRole(role string) string {
	switch role {
	case "assistant":
		return openai.ChatMessageRoleAssistant
	case "system":
		return openai.ChatMessageRoleSystem
	default:
		return openai.ChatMessageRoleUser
	}
}
