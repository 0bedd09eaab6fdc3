// Package config loads, validates, and persists application configuration.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/ansokolov/gpt-trace/internal/constants"
	"github.com/ansokolov/gpt-trace/internal/logger"
)

// Config holds all configuration settings.
type Config struct {
	// Endpoint is the base URL of the OpenAI-compatible API service.
	Endpoint string `mapstructure:"endpoint"`
	// APIKey is the secret used in api-key authentication mode.
	APIKey string `mapstructure:"api_key"`
	// APIVersion identifies the remote API contract version (api-version query parameter).
	APIVersion string `mapstructure:"api_version"`
	// Deployment is the model deployment name requests are routed to.
	Deployment string `mapstructure:"deployment"`
	// AuthMode selects the authentication scheme: "api_key" or "oauth".
	AuthMode string `mapstructure:"auth_mode"`
	// OAuthTokenURL is the client-credentials token endpoint (oauth mode only).
	OAuthTokenURL string `mapstructure:"oauth_token_url"`
	// OAuthClientID is the OAuth client identifier (oauth mode only).
	OAuthClientID string `mapstructure:"oauth_client_id"`
	// OAuthClientSecret is the OAuth client secret (oauth mode only).
	OAuthClientSecret string `mapstructure:"oauth_client_secret"`
	// OAuthScopes are the scopes requested with the token (oauth mode only).
	OAuthScopes []string `mapstructure:"oauth_scopes"`
	// SystemMessage is prepended to every traced chat completion, when set.
	SystemMessage string `mapstructure:"system_message"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// MaxLogLength caps logged request/response body length (e.g. "64KB", "1MB").
	MaxLogLength string `mapstructure:"max_log_length"`
	// RequestTimeout bounds each HTTP request end to end (e.g. "60s").
	RequestTimeout string `mapstructure:"request_timeout"`
	// RetryAttemptsCount is the number of attempts for rate-limited requests.
	RetryAttemptsCount int64 `mapstructure:"retry_attempts_count"`
	// MinRetryPause is the minimum pause duration before retrying.
	MinRetryPause string `mapstructure:"min_retry_pause"`
	// MaxRetryPause is the maximum pause duration before retrying.
	MaxRetryPause string `mapstructure:"max_retry_pause"`
	// InjectRequestID toggles stamping requests with a client request ID header.
	InjectRequestID bool `mapstructure:"inject_request_id"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
	// ParsedMaxLogLength is the parsed log length cap in bytes.
	ParsedMaxLogLength uint64
	// ParsedRequestTimeout is the parsed request timeout.
	ParsedRequestTimeout time.Duration
	// ParsedMinRetryPause is the parsed minimum retry pause duration.
	ParsedMinRetryPause time.Duration
	// ParsedMaxRetryPause is the parsed maximum retry pause duration.
	ParsedMaxRetryPause time.Duration
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".gpt-trace.yaml"

	// DefaultAPIVersion is the API contract version requested when none is configured.
	DefaultAPIVersion = "2024-10-21"

	// AuthModeAPIKey authenticates with a static api-key header.
	AuthModeAPIKey = "api_key"

	// AuthModeOAuth authenticates with a bearer token from the client-credentials flow.
	AuthModeOAuth = "oauth"
)

// Static error definitions for better error handling.
var (
	// ErrEmptyEndpoint indicates that the service endpoint is missing.
	ErrEmptyEndpoint = errors.New("endpoint cannot be empty")
	// ErrInvalidEndpoint indicates that the service endpoint is not a valid base URL.
	ErrInvalidEndpoint = errors.New("endpoint must be a valid http(s) URL")
	// ErrEmptyAPIKey indicates that the API key is missing in api-key mode.
	ErrEmptyAPIKey = errors.New("api_key cannot be empty in api_key mode")
	// ErrUnknownAuthMode indicates an unrecognized authentication mode.
	ErrUnknownAuthMode = errors.New("unknown auth mode")
	// ErrIncompleteOAuthConfig indicates missing client-credentials settings in oauth mode.
	ErrIncompleteOAuthConfig = errors.New("oauth mode requires oauth_token_url, oauth_client_id and oauth_client_secret")
	// ErrEmptyDeployment indicates that the deployment name is missing.
	ErrEmptyDeployment = errors.New("deployment cannot be empty")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidRequestTimeout indicates that the request timeout is invalid.
	ErrInvalidRequestTimeout = errors.New("request_timeout must be positive")
	// ErrInvalidRetryAttempts indicates that the retry attempts count is invalid.
	ErrInvalidRetryAttempts = errors.New("retry attempts count must be a positive integer")
	// ErrInvalidMinRetryPause indicates that the min retry pause duration is invalid.
	ErrInvalidMinRetryPause = errors.New("min_retry_pause must be positive")
	// ErrInvalidMaxRetryPause indicates that the max retry pause duration is invalid.
	ErrInvalidMaxRetryPause = errors.New("max_retry_pause must be positive")
)

// LoadConfig loads configuration settings from a YAML file.
func LoadConfig(configFilename string) (*Config, error) {
	if configFilename == "" {
		configFilename = DefaultConfigFilename
	}

	viper.SetConfigFile(configFilename)

	viper.SetDefault("api_version", DefaultAPIVersion)
	viper.SetDefault("auth_mode", AuthModeAPIKey)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("max_log_length", "1MB")
	viper.SetDefault("request_timeout", "60s")
	viper.SetDefault("retry_attempts_count", 3)
	viper.SetDefault("min_retry_pause", "1s")
	viper.SetDefault("max_retry_pause", "5s")
	viper.SetDefault("inject_request_id", true)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config from file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
//
//nolint:cyclop // Validation functions naturally have high complexity due to sequential checks.
func ValidateConfig(cfg *Config) error {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return ErrEmptyEndpoint
	}

	parsedEndpoint, err := url.Parse(endpoint)
	if err != nil || parsedEndpoint.Host == "" ||
		(parsedEndpoint.Scheme != "http" && parsedEndpoint.Scheme != "https") {
		return fmt.Errorf("%w: '%s'", ErrInvalidEndpoint, cfg.Endpoint)
	}

	switch cfg.AuthMode {
	case AuthModeAPIKey:
		if strings.TrimSpace(cfg.APIKey) == "" {
			return ErrEmptyAPIKey
		}
	case AuthModeOAuth:
		if cfg.OAuthTokenURL == "" || cfg.OAuthClientID == "" || cfg.OAuthClientSecret == "" {
			return ErrIncompleteOAuthConfig
		}
	default:
		return fmt.Errorf("%w: '%s'", ErrUnknownAuthMode, cfg.AuthMode)
	}

	if strings.TrimSpace(cfg.Deployment) == "" {
		return ErrEmptyDeployment
	}

	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	if maxLogLength := strings.TrimSpace(cfg.MaxLogLength); maxLogLength != "" && maxLogLength != "0" {
		cfg.ParsedMaxLogLength, err = humanize.ParseBytes(maxLogLength)
		if err != nil {
			return fmt.Errorf("failed to parse max log length: %w", err)
		}
	}

	cfg.ParsedRequestTimeout, err = time.ParseDuration(cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("failed to parse request timeout: %w", err)
	}

	if cfg.ParsedRequestTimeout <= 0 {
		return ErrInvalidRequestTimeout
	}

	if cfg.RetryAttemptsCount <= 0 {
		return ErrInvalidRetryAttempts
	}

	cfg.ParsedMinRetryPause, err = time.ParseDuration(cfg.MinRetryPause)
	if err != nil {
		return fmt.Errorf("failed to parse min retry pause: %w", err)
	}

	if cfg.ParsedMinRetryPause <= 0 {
		return ErrInvalidMinRetryPause
	}

	cfg.ParsedMaxRetryPause, err = time.ParseDuration(cfg.MaxRetryPause)
	if err != nil {
		return fmt.Errorf("failed to parse max retry pause: %w", err)
	}

	if cfg.ParsedMaxRetryPause <= 0 {
		return ErrInvalidMaxRetryPause
	}

	return nil
}

// SaveConfig saves the configuration to the file while preserving the original format and order.
// Only the api_key value is rewritten; everything else keeps its place and style.
func SaveConfig(cfg *Config) error {
	configFile := getConfigFilePath()

	originalContent, err := os.ReadFile(configFile)
	if err != nil {
		return handleMissingConfigFile(configFile, cfg.APIKey, err)
	}

	// Parse YAML while preserving order using yaml.Node.
	var node yaml.Node
	if err = yaml.Unmarshal(originalContent, &node); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	updateAPIKeyInNode(&node, cfg.APIKey)

	newContent, err := yaml.Marshal(&node)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err = os.WriteFile(configFile, newContent, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// getConfigFilePath returns the config file path from viper or the default.
func getConfigFilePath() string {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		return DefaultConfigFilename
	}

	return configFile
}

// handleMissingConfigFile creates a new config file if it doesn't exist.
func handleMissingConfigFile(configFile, apiKey string, err error) error {
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// File doesn't exist, create it with viper.
	viper.Set("api_key", apiKey)

	if err = viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	return nil
}

// updateAPIKeyInNode updates the api_key value in the YAML node tree.
func updateAPIKeyInNode(node *yaml.Node, apiKey string) {
	// The root node is a document node, content[0] is the actual map.
	if len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
		return
	}

	mapNode := node.Content[0]

	// Iterate through key-value pairs (stored as alternating nodes).
	for i := 0; i < len(mapNode.Content)-1; i += 2 {
		keyNode := mapNode.Content[i]
		valueNode := mapNode.Content[i+1]

		if keyNode.Value == "api_key" {
			valueNode.Value = apiKey

			// Ensure it's quoted if it contains special characters.
			if valueNode.Style == 0 {
				valueNode.Style = yaml.DoubleQuotedStyle
			}

			break
		}
	}
}
