package openai

const (
	// chatCompletionsURIFormat is the URI path template for the chat completions
	// endpoint of a deployment.
	chatCompletionsURIFormat = "openai/deployments/%s/chat/completions"
	// embeddingsURIFormat is the URI path template for the embeddings endpoint
	// of a deployment.
	embeddingsURIFormat = "openai/deployments/%s/embeddings"
	// modelsURI is the URI path for the model catalog endpoint.
	modelsURI = "openai/models"

	// apiVersionQueryParam selects the API contract version on every call.
	apiVersionQueryParam = "api-version"

	// apiKeyHeader carries the static credential in api-key mode.
	apiKeyHeader = "api-key"
	// authorizationHeader carries the bearer token in oauth mode.
	authorizationHeader = "Authorization"
	// contentTypeHeader declares the request payload type.
	contentTypeHeader = "Content-Type"
	// jsonContentType is the payload type for all request bodies.
	jsonContentType = "application/json"
)

const (
	// modelsCacheSize defines the maximum number of model entries to cache.
	// Deployed model catalogs are small; this comfortably holds all of them.
	modelsCacheSize = 256
)
