package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateContent_Success(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  This is a summary \n"}]}}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-model", "secret", time.Second)
	text, err := c.GenerateContent(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, "This is a summary", text)
	require.Len(t, got.Contents, 1)
	require.Len(t, got.Contents[0].Parts, 1)
	assert.Equal(t, "hello", got.Contents[0].Parts[0].Text)
}

func TestGenerateContent_APIErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error":"Something went wrong"}`},
		{"empty object", http.StatusOK, `{}`},
		{"invalid json", http.StatusOK, `not json`},
		{"no parts", http.StatusOK, `{"candidates":[{"content":{"parts":[]}}]}`},
		{"blank text", http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"   "}]}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, "", "key", time.Second).GenerateContent(context.Background(), "x")

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestGenerateContent_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewClient(srv.URL, "", "key", 50*time.Millisecond).GenerateContent(context.Background(), "x")

	assert.True(t, errors.Is(err, ErrTimeout), "got %v", err)
}

func TestGenerateContent_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, "", "key", time.Second).GenerateContent(context.Background(), "x")

	assert.True(t, errors.Is(err, ErrTransport), "got %v", err)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("", "", "key", 0)

	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, DefaultModel, c.model)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
}
