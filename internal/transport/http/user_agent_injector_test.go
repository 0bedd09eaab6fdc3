package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUserAgentInjector_InjectsWhenMissing tests RoundTrip when no User-Agent is set.
func TestUserAgentInjector_InjectsWhenMissing(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TestAgent/1.0", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	injector := NewUserAgentInjector(http.DefaultTransport, "TestAgent/1.0")

	req, err := http.NewRequest(http.MethodGet, server.URL, http.NoBody) //nolint:noctx // Test code.
	require.NoError(t, err)

	resp, err := injector.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup.

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestUserAgentInjector_PreservesExisting tests RoundTrip when the header already exists.
func TestUserAgentInjector_PreservesExisting(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ExistingAgent/1.0", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	injector := NewUserAgentInjector(http.DefaultTransport, "TestAgent/1.0")

	req, err := http.NewRequest(http.MethodGet, server.URL, http.NoBody) //nolint:noctx // Test code.
	require.NoError(t, err)
	req.Header.Set("User-Agent", "ExistingAgent/1.0")

	resp, err := injector.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup.

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
