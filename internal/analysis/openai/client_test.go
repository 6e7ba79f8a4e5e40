package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citypulse/citypulse/internal/analysis/openai"
)

func TestClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer ****", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req["model"])
		assert.NotZero(t, req["max_tokens"])

		messages, ok := req["messages"].([]any)
		require.True(t, ok)
		require.Len(t, messages, 1)
		message := messages[0].(map[string]any)
		assert.Equal(t, "user", message["role"])
		assert.Contains(t, message["content"], "analyze this")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [
				{"message": {"role": "assistant", "content": "{\"insights\":\"fine\"}"}}
			]
		}`))
	}))
	defer server.Close()

	client := openai.NewClient(openai.ClientConfig{
		APIKey:  "****",
		BaseURL: server.URL,
	})

	content, err := client.Complete(context.Background(), "analyze this")
	require.NoError(t, err)
	assert.Equal(t, `{"insights":"fine"}`, content)
}

func TestClient_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := openai.NewClient(openai.ClientConfig{APIKey: "****", BaseURL: server.URL})

	_, err := client.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestClient_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client := openai.NewClient(openai.ClientConfig{APIKey: "****", BaseURL: server.URL})

	_, err := client.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := openai.NewClient(openai.ClientConfig{APIKey: "****", BaseURL: server.URL})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Complete(ctx, "prompt")
	require.Error(t, err)
}

func TestClient_Name(t *testing.T) {
	client := openai.NewClient(openai.ClientConfig{APIKey: "****"})
	assert.Equal(t, "openai", client.Name())
}
