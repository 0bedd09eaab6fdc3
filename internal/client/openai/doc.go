// Package openai provides a client for OpenAI-compatible REST APIs that route
// requests through model deployments (Azure-style endpoints). It covers chat
// completions, embeddings, and model metadata, handles api-key and OAuth
// client-credentials authentication, retries rate-limited calls, and can be
// constructed together with a tracing HTTP client that records every exchange.
package openai
