package groq

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spigell/talentscout/internal/ai"

	"github.com/stretchr/testify/require"
)

func TestChatURL(t *testing.T) {
	cases := []struct {
		base string
		want string
	}{
		{"https://api.groq.com/openai/v1", "https://api.groq.com/openai/v1/chat/completions"},
		{"https://api.groq.com/openai/v1/", "https://api.groq.com/openai/v1/chat/completions"},
		{"", "https://api.groq.com/openai/v1/chat/completions"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, chatURL(tc.base), "base=%q", tc.base)
	}
}

func TestNewClient(t *testing.T) {
	_, err := NewClient("  ", "")
	require.Error(t, err)

	c, err := NewClient("key", "")
	require.NoError(t, err)
	require.Equal(t, defaultModel, c.Model())
	require.Equal(t, defaultBaseURL, c.baseURL)
}

func TestGenerateSendsChatCompletion(t *testing.T) {
	var (
		got     chatRequest
		auth    string
		path    string
		decoded error
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		decoded = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Q1\nQ2\n"}}]}`))
	}))
	defer srv.Close()

	c, err := NewClient("secret", "llama", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	out, err := c.Generate(context.Background(), ai.Request{
		System:      "be terse",
		Prompt:      "Generate 3 questions",
		Temperature: 0.7,
		MaxTokens:   500,
	})
	require.NoError(t, err)
	require.Equal(t, "Q1\nQ2", out)

	require.NoError(t, decoded)
	require.Equal(t, "/chat/completions", path)
	require.Equal(t, "Bearer secret", auth)
	require.Equal(t, "llama", got.Model)
	require.Equal(t, 500, got.MaxTokens)
	require.NotNil(t, got.Temperature)
	require.InDelta(t, 0.7, *got.Temperature, 1e-9)
	require.Equal(t, []chatMessage{
		{Role: "system", Content: "be terse"},
		{Role: "user", Content: "Generate 3 questions"},
	}, got.Messages)
}

func TestGenerateReturnsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer srv.Close()

	c, err := NewClient("secret", "", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), ai.Request{Prompt: "p"})
	require.Error(t, err)

	var statusErr *HTTPStatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	require.Contains(t, statusErr.Body, "rate limited")
}

func TestGenerateRejectsEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c, err := NewClient("secret", "", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), ai.Request{Prompt: "p"})
	require.ErrorContains(t, err, "no choices")

	_, err = c.Generate(context.Background(), ai.Request{Prompt: "  "})
	require.ErrorContains(t, err, "prompt must not be empty")
}
