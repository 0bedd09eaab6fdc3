package openai

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/ansokolov/gpt-trace/internal/config"
	"github.com/ansokolov/gpt-trace/internal/logger"
	http_transport "github.com/ansokolov/gpt-trace/internal/transport/http"
	"github.com/ansokolov/gpt-trace/internal/utils"
	"github.com/ansokolov/gpt-trace/internal/version"
)

// Client defines the interface for interacting with an OpenAI-compatible API.
type Client interface {
	// CreateChatCompletion generates a chat completion for the given conversation.
	CreateChatCompletion(ctx context.Context, request *ChatCompletionRequest) (*ChatCompletionResponse, error)
	// CreateEmbeddings computes embedding vectors for the given inputs.
	CreateEmbeddings(ctx context.Context, request *EmbeddingsRequest) (*EmbeddingsResponse, error)
	// ListModels retrieves the model catalog of the endpoint.
	ListModels(ctx context.Context) ([]*Model, error)
	// GetModel retrieves metadata for a single model by ID.
	GetModel(ctx context.Context, modelID string) (*Model, error)
	// GetBaseURL returns the base URL of the API endpoint.
	GetBaseURL() string
}

// ClientImpl implements the Client interface.
type ClientImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// baseURL is the base URL for API requests.
	baseURL string
	// httpClient is the HTTP client for making requests.
	httpClient *http.Client
	// tokenSource yields bearer tokens in oauth mode, nil in api-key mode.
	tokenSource oauth2.TokenSource
	// modelsCache caches model metadata to reduce duplicate API calls for the same models.
	modelsCache *lru.Cache[string, *Model]
}

// NewClient creates and returns a new instance of ClientImpl issuing requests
// through the given HTTP client. A nil httpClient falls back to a plain client
// with the configured timeout.
func NewClient(cfg *config.Config, httpClient *http.Client) (Client, error) {
	baseURL, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint URL: %w", err)
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.ParsedRequestTimeout}
	}

	var tokenSource oauth2.TokenSource

	if cfg.AuthMode == config.AuthModeOAuth {
		credentials := &clientcredentials.Config{
			ClientID:     cfg.OAuthClientID,
			ClientSecret: cfg.OAuthClientSecret,
			TokenURL:     cfg.OAuthTokenURL,
			Scopes:       cfg.OAuthScopes,
		}

		// Token exchange goes over a plain client: credential traffic is not
		// part of the traced API exchange.
		tokenSource = credentials.TokenSource(context.Background())
	}

	modelsCache, err := lru.New[string, *Model](modelsCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create models cache: %w", err)
	}

	return &ClientImpl{
		cfg:         cfg,
		baseURL:     baseURL.String(),
		httpClient:  httpClient,
		tokenSource: tokenSource,
		modelsCache: modelsCache,
	}, nil
}

// NewClientWithTracing creates a ready-to-use pair: an SDK client and the
// tracing HTTP client all its calls are routed through. The pair is built
// eagerly; no network traffic happens until the first API call.
func NewClientWithTracing(cfg *config.Config) (Client, *http_transport.TracingClient, error) {
	tracingClient := http_transport.NewTracingClient(http_transport.ClientOptions{
		Timeout:         cfg.ParsedRequestTimeout,
		Sink:            http_transport.NewZapSink(logger.Logger()),
		MaxLogLength:    cfg.ParsedMaxLogLength,
		UserAgent:       "gpt-trace/" + version.Short(),
		InjectRequestID: cfg.InjectRequestID,
	})

	client, err := NewClient(cfg, tracingClient.Client)
	if err != nil {
		return nil, nil, err
	}

	return client, tracingClient, nil
}

// CreateChatCompletion generates a chat completion for the given conversation.
// Rate-limited calls are retried with a randomized pause between attempts.
func (c *ClientImpl) CreateChatCompletion(
	ctx context.Context,
	request *ChatCompletionRequest,
) (*ChatCompletionResponse, error) {
	uri := fmt.Sprintf(chatCompletionsURIFormat, c.cfg.Deployment)

	var result *ChatCompletionResponse

	for i := int64(0); i < c.cfg.RetryAttemptsCount; i++ {
		fetchResult, err := postJSON[ChatCompletionResponse](c, ctx, uri, request)
		if err == nil {
			result = fetchResult.Data

			break
		}

		if i < c.cfg.RetryAttemptsCount-1 && fetchResult != nil &&
			fetchResult.StatusCode == http.StatusTooManyRequests {
			logger.Infof(ctx, "Rate limited, retrying (%d attempts left): %v",
				c.cfg.RetryAttemptsCount-i-1, err)
			utils.RandomPause(c.cfg.ParsedMinRetryPause, c.cfg.ParsedMaxRetryPause)

			continue
		}

		return nil, err
	}

	if result == nil {
		return nil, ErrRetriesExhausted
	}

	return result, nil
}

// CreateEmbeddings computes embedding vectors for the given inputs.
func (c *ClientImpl) CreateEmbeddings(
	ctx context.Context,
	request *EmbeddingsRequest,
) (*EmbeddingsResponse, error) {
	uri := fmt.Sprintf(embeddingsURIFormat, c.cfg.Deployment)

	result, err := postJSON[EmbeddingsResponse](c, ctx, uri, request)
	if err != nil {
		return nil, err
	}

	return result.Data, nil
}

// ListModels retrieves the model catalog of the endpoint.
// Fetched entries are added to the model cache.
func (c *ClientImpl) ListModels(ctx context.Context) ([]*Model, error) {
	result, err := getJSON[listModelsResponse](c, ctx, modelsURI)
	if err != nil {
		return nil, err
	}

	models := result.Data.Data
	for _, model := range models {
		if model.ID != "" {
			c.modelsCache.Add(model.ID, model)
		}
	}

	return models, nil
}

// GetModel retrieves metadata for a single model by ID.
// Uses an LRU cache to avoid redundant API calls for the same model.
func (c *ClientImpl) GetModel(ctx context.Context, modelID string) (*Model, error) {
	if modelID == "" {
		return nil, ErrEmptyModelID
	}

	if cached, ok := c.modelsCache.Get(modelID); ok {
		logger.Debugf(ctx, "Model cache hit for ID: %s", modelID)

		return cached, nil
	}

	result, err := getJSON[Model](c, ctx, modelsURI+"/"+url.PathEscape(modelID))
	if err != nil {
		return nil, err
	}

	c.modelsCache.Add(modelID, result.Data)

	return result.Data, nil
}

// GetBaseURL returns the base URL of the API endpoint.
func (c *ClientImpl) GetBaseURL() string {
	return c.baseURL
}

// setAuthHeaders injects the credential for the configured authentication mode.
func (c *ClientImpl) setAuthHeaders(request *http.Request) error {
	if c.tokenSource != nil {
		token, err := c.tokenSource.Token()
		if err != nil {
			return fmt.Errorf("failed to obtain access token: %w", err)
		}

		request.Header.Set(authorizationHeader, "Bearer "+token.AccessToken)

		return nil
	}

	request.Header.Set(apiKeyHeader, c.cfg.APIKey)

	return nil
}
