package groq

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"budget-recipe-api/internal/core/ai/provider"
	"budget-recipe-api/internal/infrastructure/config"
	"budget-recipe-api/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// DefaultBaseURL Groq 的 OpenAI 相容端點
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// Client Groq chat completions 客戶端
type Client struct {
	client *resty.Client
	model  string
}

// chatRequest OpenAI 相容請求
type chatRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens,omitempty"`
	Messages  []provider.Message `json:"messages"`
}

// chatResponse OpenAI 相容響應
type chatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage provider.Usage `json:"usage"`
}

// apiError 錯誤響應
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewClient 創建 Groq 客戶端
func NewClient(cfg config.GroqConfig) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, provider.ErrMissingAPIKey
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(0)

	return &Client{
		client: client,
		model:  cfg.Model,
	}, nil
}

// Name 供應商名稱
func (c *Client) Name() string { return config.ProviderGroq }

// GetModel 模型名稱
func (c *Client) GetModel() string { return c.model }

// Complete 發送 chat completion 請求
func (c *Client) Complete(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	messages := make([]provider.Message, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, provider.Message{Role: provider.RoleSystem, Content: req.System})
	}
	messages = append(messages, req.Messages...)

	body := chatRequest{
		Model:     c.model,
		MaxTokens: req.MaxTokens,
		Messages:  messages,
	}

	common.LogDebug("Sending request to Groq",
		zap.String("model", c.model),
		zap.Int("messages", len(messages)),
		zap.Int("max_tokens", req.MaxTokens),
	)

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Groq: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(resp.Body(), &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("Groq API returned status %d: %s", resp.StatusCode(), apiErr.Error.Message)
		}
		return nil, fmt.Errorf("Groq API returned status %d: %s", resp.StatusCode(), common.Truncate(resp.String(), 512))
	}

	var result chatResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse Groq response: %w", err)
	}

	out := &provider.Response{Usage: result.Usage}
	if len(result.Choices) > 0 {
		out.Content = result.Choices[0].Message.Content
		out.StopReason = result.Choices[0].FinishReason
	}

	common.LogInfo("Groq response received",
		zap.String("model", c.model),
		zap.String("stop_reason", out.StopReason),
		zap.Int("content_length", len(out.Content)),
	)

	return out, nil
}

// Close 關閉客戶端
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
