package openai

// Chat message roles.
const (
	// RoleSystem marks instructions that steer the model's behavior.
	RoleSystem = "system"
	// RoleUser marks end-user input.
	RoleUser = "user"
	// RoleAssistant marks model output.
	RoleAssistant = "assistant"
)

// ChatMessage is a single message in a chat completion conversation.
type ChatMessage struct {
	// Role is one of the Role* constants.
	Role string `json:"role"`
	// Content is the message text.
	Content string `json:"content"`
}

// ChatCompletionRequest is the payload of a chat completions call.
type ChatCompletionRequest struct {
	// Messages is the conversation so far, oldest first.
	Messages []ChatMessage `json:"messages"`
	// MaxTokens caps the length of the generated completion when positive.
	MaxTokens int `json:"max_tokens,omitempty"`
	// Temperature tunes sampling randomness when set.
	Temperature *float64 `json:"temperature,omitempty"`
	// User is an opaque end-user identifier forwarded for abuse monitoring.
	User string `json:"user,omitempty"`
}

// ChatCompletionChoice is one generated completion alternative.
type ChatCompletionChoice struct {
	// Index is the position of the choice in the response.
	Index int `json:"index"`
	// Message is the generated message.
	Message ChatMessage `json:"message"`
	// FinishReason explains why generation stopped ("stop", "length", ...).
	FinishReason string `json:"finish_reason"`
}

// Usage reports token accounting for a call.
type Usage struct {
	// PromptTokens is the number of tokens in the input.
	PromptTokens int `json:"prompt_tokens"`
	// CompletionTokens is the number of generated tokens.
	CompletionTokens int `json:"completion_tokens"`
	// TotalTokens is the sum of prompt and completion tokens.
	TotalTokens int `json:"total_tokens"`
}

// ChatCompletionResponse is the result of a chat completions call.
type ChatCompletionResponse struct {
	// ID identifies the completion.
	ID string `json:"id"`
	// Object is the response object type ("chat.completion").
	Object string `json:"object"`
	// Created is the creation time as a Unix timestamp.
	Created int64 `json:"created"`
	// Model names the model that produced the completion.
	Model string `json:"model"`
	// Choices holds the generated alternatives.
	Choices []ChatCompletionChoice `json:"choices"`
	// Usage reports token accounting, when the server includes it.
	Usage *Usage `json:"usage,omitempty"`
}

// FirstMessageContent returns the content of the first choice,
// or an empty string when the response carries no choices.
func (r *ChatCompletionResponse) FirstMessageContent() string {
	if r == nil || len(r.Choices) == 0 {
		return ""
	}

	return r.Choices[0].Message.Content
}

// EmbeddingsRequest is the payload of an embeddings call.
type EmbeddingsRequest struct {
	// Input holds the texts to embed.
	Input []string `json:"input"`
	// User is an opaque end-user identifier forwarded for abuse monitoring.
	User string `json:"user,omitempty"`
}

// Embedding is a single embedding vector with its input position.
type Embedding struct {
	// Index is the position of the corresponding input text.
	Index int `json:"index"`
	// Object is the entry object type ("embedding").
	Object string `json:"object"`
	// Vector is the embedding itself.
	Vector []float64 `json:"embedding"`
}

// EmbeddingsResponse is the result of an embeddings call.
type EmbeddingsResponse struct {
	// Object is the response object type ("list").
	Object string `json:"object"`
	// Data holds one embedding per input text.
	Data []Embedding `json:"data"`
	// Model names the model that produced the embeddings.
	Model string `json:"model"`
	// Usage reports token accounting, when the server includes it.
	Usage *Usage `json:"usage,omitempty"`
}

// Model describes an available model or deployment.
type Model struct {
	// ID is the model identifier.
	ID string `json:"id"`
	// Object is the entry object type ("model").
	Object string `json:"object"`
	// CreatedAt is the creation time as a Unix timestamp.
	CreatedAt int64 `json:"created_at"`
	// LifecycleStatus reports the support phase ("generally-available", "preview", ...).
	LifecycleStatus string `json:"lifecycle_status"`
	// Capabilities lists what the model can do.
	Capabilities ModelCapabilities `json:"capabilities"`
}

// ModelCapabilities flags the operations a model supports.
type ModelCapabilities struct {
	// ChatCompletion reports chat completions support.
	ChatCompletion bool `json:"chat_completion"`
	// Embeddings reports embeddings support.
	Embeddings bool `json:"embeddings"`
	// FineTune reports fine-tuning support.
	FineTune bool `json:"fine_tune"`
}

// listModelsResponse is the wire shape of the model catalog endpoint.
type listModelsResponse struct {
	// Object is the response object type ("list").
	Object string `json:"object"`
	// Data holds the catalog entries.
	Data []*Model `json:"data"`
}

// FetchJSONResult carries a decoded payload together with the HTTP status it
// arrived with, so callers can react to specific statuses (e.g. retry on 429).
type FetchJSONResult[T any] struct {
	// Data is the decoded payload, nil on failure.
	Data *T
	// StatusCode is the HTTP status of the response.
	StatusCode int
}
