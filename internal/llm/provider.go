package llm

import (
	"context"
	"encoding/json"
)

// Provider is the single abstraction over external completion services:
// send instruction text, receive completion text or an error. The quiz
// pipeline is polymorphic over this interface, so the backing service is
// selected by configuration rather than by sniffing API key prefixes.
type Provider interface {
	// Generate sends a prompt and returns the completion. When the
	// request carries a Schema, providers that support native structured
	// output use it and the response content is validated against the
	// schema; the content is otherwise the raw completion text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the completion service.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Quiz generation is single-turn, so
	// this is normally one user message.
	Messages []Message

	// Schema, when set, asks the provider for JSON conforming to it via
	// its native structured-output mechanism. Consumers must still treat
	// the content as untrusted text.
	Schema *Schema

	// MaxTokens caps the completion length.
	MaxTokens int

	// Temperature controls sampling randomness, 0.0-1.0.
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema the completion should conform to.
type Schema struct {
	// Name identifies the schema (tool name for Anthropic, schema name
	// for OpenAI). Kebab-case.
	Name string

	// Description tells the model what the schema represents.
	Description string

	// Definition is the JSON Schema definition.
	Definition map[string]any
}

// Response holds the completion output.
type Response struct {
	// Content is the completion text. Raw model output unless a Schema
	// was requested, in which case it has been validated against it.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
