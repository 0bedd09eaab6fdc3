package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// getJSON fetches JSON from the specified URI with authentication and the
// configured api-version.
//
//nolint:revive // Free function because Go doesn't allow struct methods to be generic.
func getJSON[T any](c *ClientImpl, ctx context.Context, uri string) (*FetchJSONResult[T], error) {
	return doJSON[T](c, ctx, http.MethodGet, uri, nil)
}

// postJSON posts a JSON payload to the specified URI with authentication and
// the configured api-version.
//
//nolint:revive // Free function because Go doesn't allow struct methods to be generic.
func postJSON[T any](c *ClientImpl, ctx context.Context, uri string, payload any) (*FetchJSONResult[T], error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request payload: %w", err)
	}

	return doJSON[T](c, ctx, http.MethodPost, uri, body)
}

//nolint:revive // Free function because Go doesn't allow struct methods to be generic.
func doJSON[T any](
	c *ClientImpl,
	ctx context.Context,
	method string,
	uri string,
	body []byte,
) (*FetchJSONResult[T], error) {
	route, err := url.JoinPath(c.baseURL, uri)
	if err != nil {
		return nil, err
	}

	var bodyReader *bytes.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	var request *http.Request
	if bodyReader != nil {
		request, err = http.NewRequestWithContext(ctx, method, route, bodyReader)
	} else {
		request, err = http.NewRequestWithContext(ctx, method, route, http.NoBody)
	}

	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set(apiVersionQueryParam, c.cfg.APIVersion)
	request.URL.RawQuery = query.Encode()

	if body != nil {
		request.Header.Set(contentTypeHeader, jsonContentType)
	}

	if err = c.setAuthHeaders(request); err != nil {
		return nil, err
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close() //nolint:errcheck // Error on close is not critical here.

	if response.StatusCode != http.StatusOK {
		return &FetchJSONResult[T]{
			Data:       nil,
			StatusCode: response.StatusCode,
		}, fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	var result T
	if err = json.NewDecoder(response.Body).Decode(&result); err != nil {
		return &FetchJSONResult[T]{
			Data:       nil,
			StatusCode: response.StatusCode,
		}, err
	}

	return &FetchJSONResult[T]{
		Data:       &result,
		StatusCode: response.StatusCode,
	}, nil
}
