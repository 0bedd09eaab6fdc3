package trace

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ansokolov/gpt-trace/internal/client/openai"
	mock_openai "github.com/ansokolov/gpt-trace/internal/client/openai/mocks"
	"github.com/ansokolov/gpt-trace/internal/config"
	http_transport "github.com/ansokolov/gpt-trace/internal/transport/http"
)

var errPromptFailed = errors.New("completion failed")

// newTestService builds a service over a gomock SDK client and a real tracing
// client pointed at the given handler.
func newTestService(
	t *testing.T,
	cfg *config.Config,
	handler http.HandlerFunc,
) (*ServiceImpl, *mock_openai.MockClient, string) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockClient := mock_openai.NewMockClient(ctrl)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tracingClient := http_transport.NewTracingClient(http_transport.ClientOptions{
		Sink: http_transport.NopSink{},
	})

	service, ok := NewService(cfg, mockClient, tracingClient).(*ServiceImpl)
	require.True(t, ok)

	return service, mockClient, server.URL
}

// sendThroughTracingClient drives one HTTP exchange through the service's
// tracing client, the way a real SDK call would.
func sendThroughTracingClient(t *testing.T, service *ServiceImpl, url, body string) {
	t.Helper()

	response, err := service.tracingClient.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	require.NoError(t, response.Body.Close())
}

func TestTracePrompts_RecordsStatistics(t *testing.T) {
	t.Parallel()

	service, mockClient, serverURL := newTestService(t, &config.Config{},
		func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"id":"cmpl-1"}`))
		})

	mockClient.EXPECT().
		CreateChatCompletion(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, request *openai.ChatCompletionRequest) (
			*openai.ChatCompletionResponse, error,
		) {
			require.Len(t, request.Messages, 1)
			assert.Equal(t, openai.RoleUser, request.Messages[0].Role)

			sendThroughTracingClient(t, service, serverURL, `{"prompt":"hello"}`)

			return &openai.ChatCompletionResponse{
				Choices: []openai.ChatCompletionChoice{
					{Message: openai.ChatMessage{Role: openai.RoleAssistant, Content: "hi"}},
				},
				Usage: &openai.Usage{TotalTokens: 7},
			}, nil
		})

	service.TracePrompts(context.Background(), []string{"hello"})

	assert.Equal(t, int64(1), service.stats.RequestsSent)
	assert.Equal(t, int64(0), service.stats.RequestsFailed)
	assert.Equal(t, int64(len(`{"prompt":"hello"}`)), service.stats.BytesSent)
	assert.Equal(t, int64(len(`{"id":"cmpl-1"}`)), service.stats.BytesReceived)
	assert.Equal(t, int64(7), service.stats.TotalTokens)
	assert.False(t, service.stats.StartTime.IsZero())
	assert.False(t, service.stats.EndTime.IsZero())
}

func TestTracePrompts_RecordsFailures(t *testing.T) {
	t.Parallel()

	service, mockClient, _ := newTestService(t, &config.Config{},
		func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

	mockClient.EXPECT().
		CreateChatCompletion(gomock.Any(), gomock.Any()).
		Return(nil, errPromptFailed)

	service.TracePrompts(context.Background(), []string{"doomed"})

	assert.Equal(t, int64(0), service.stats.RequestsSent)
	assert.Equal(t, int64(1), service.stats.RequestsFailed)
	require.Len(t, service.stats.Errors, 1)
	assert.Equal(t, "doomed", service.stats.Errors[0].Prompt)
	assert.Contains(t, service.stats.Errors[0].ErrorMessage, "completion failed")
}

func TestTracePrompts_PrependsSystemMessage(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{SystemMessage: "You are terse."}

	service, mockClient, _ := newTestService(t, cfg,
		func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		})

	mockClient.EXPECT().
		CreateChatCompletion(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, request *openai.ChatCompletionRequest) (
			*openai.ChatCompletionResponse, error,
		) {
			require.Len(t, request.Messages, 2)
			assert.Equal(t, openai.RoleSystem, request.Messages[0].Role)
			assert.Equal(t, "You are terse.", request.Messages[0].Content)
			assert.Equal(t, openai.RoleUser, request.Messages[1].Role)
			assert.Equal(t, "hello", request.Messages[1].Content)

			return &openai.ChatCompletionResponse{}, nil
		})

	service.TracePrompts(context.Background(), []string{"hello"})
}

func TestTracePrompts_ProcessesPromptsInOrder(t *testing.T) {
	t.Parallel()

	service, mockClient, _ := newTestService(t, &config.Config{},
		func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		})

	var seen []string

	mockClient.EXPECT().
		CreateChatCompletion(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, request *openai.ChatCompletionRequest) (
			*openai.ChatCompletionResponse, error,
		) {
			seen = append(seen, request.Messages[len(request.Messages)-1].Content)

			return &openai.ChatCompletionResponse{}, nil
		}).
		Times(3)

	service.TracePrompts(context.Background(), []string{"one", "two", "three"})

	assert.Equal(t, []string{"one", "two", "three"}, seen)
	assert.Equal(t, int64(3), service.stats.RequestsSent)
}

func TestTracePrompts_StopsOnCanceledContext(t *testing.T) {
	t.Parallel()

	service, mockClient, _ := newTestService(t, &config.Config{},
		func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		})

	ctx, cancel := context.WithCancel(context.Background())

	mockClient.EXPECT().
		CreateChatCompletion(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *openai.ChatCompletionRequest) (
			*openai.ChatCompletionResponse, error,
		) {
			cancel()

			return &openai.ChatCompletionResponse{}, nil
		})

	service.TracePrompts(ctx, []string{"one", "two", "three"})

	assert.Equal(t, int64(1), service.stats.RequestsSent)
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		duration string
		expected string
	}{
		{name: "milliseconds", duration: "250ms", expected: "250ms"},
		{name: "seconds", duration: "42s", expected: "42s"},
		{name: "minutes and seconds", duration: "3m5s", expected: "3m 5s"},
		{name: "hours", duration: "2h3m4s", expected: "2h 3m 4s"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			parsed, err := time.ParseDuration(tc.duration)
			require.NoError(t, err)

			assert.Equal(t, tc.expected, formatDuration(parsed))
		})
	}
}
