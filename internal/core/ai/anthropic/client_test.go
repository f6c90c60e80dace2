package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"budget-recipe-api/internal/core/ai/provider"
	"budget-recipe-api/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(config.AnthropicConfig{})
	assert.ErrorIs(t, err, provider.ErrMissingAPIKey)
}

func TestNewClientDefaultModel(t *testing.T) {
	c, err := NewClient(config.AnthropicConfig{APIKey: "sk-ant-test"})
	require.NoError(t, err)
	assert.Equal(t, string(DefaultModel), c.GetModel())
	assert.Equal(t, config.ProviderAnthropic, c.Name())
}

func TestCompleteReturnsFirstTextBlock(t *testing.T) {
	var got map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("X-Api-Key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id": "msg_01",
			"type": "message",
			"role": "assistant",
			"model": "claude-haiku-4-5-20251001",
			"content": [{"type": "text", "text": "{\"dishName\":\"Salat\"}"}],
			"stop_reason": "end_turn",
			"stop_sequence": null,
			"usage": {"input_tokens": 12, "output_tokens": 8}
		}`)
	}))
	defer ts.Close()

	c, err := NewClient(config.AnthropicConfig{APIKey: "sk-ant-test", BaseURL: ts.URL, Model: "claude-haiku-4-5-20251001"})
	require.NoError(t, err)

	resp, err := c.Complete(context.Background(), &provider.Request{
		System:    "system text",
		Messages:  []provider.Message{{Role: provider.RoleUser, Content: "user text"}},
		MaxTokens: 1024,
	})
	require.NoError(t, err)

	assert.Equal(t, `{"dishName":"Salat"}`, resp.Content)
	assert.Equal(t, "end_turn", resp.StopReason)
	assert.Equal(t, 20, resp.Usage.TotalTokens)

	assert.Equal(t, "claude-haiku-4-5-20251001", got["model"])
	assert.EqualValues(t, 1024, got["max_tokens"])
	messages, ok := got["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, messages, 1)
	assert.NotNil(t, got["system"])
}

func TestCompleteProviderErrorIsNotRetried(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"type":"error","error":{"type":"api_error","message":"boom"}}`)
	}))
	defer ts.Close()

	c, err := NewClient(config.AnthropicConfig{APIKey: "sk-ant-test", BaseURL: ts.URL})
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), &provider.Request{
		Messages:  []provider.Message{{Role: provider.RoleUser, Content: "hi"}},
		MaxTokens: 16,
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
