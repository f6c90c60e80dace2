package anthropic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"budget-recipe-api/internal/core/ai/provider"
	"budget-recipe-api/internal/infrastructure/config"
	"budget-recipe-api/internal/pkg/common"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
)

// DefaultModel 未設定模型時使用
const DefaultModel = anthropic.ModelClaudeHaiku4_5_20251001

// Client Anthropic Messages API 客戶端
type Client struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewClient 創建 Anthropic 客戶端
func NewClient(cfg config.AnthropicConfig) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, provider.ErrMissingAPIKey
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(timeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := anthropic.Model(cfg.Model)
	if model == "" {
		model = DefaultModel
	}

	return &Client{
		client: anthropic.NewClient(opts...),
		model:  model,
	}, nil
}

// Name 供應商名稱
func (c *Client) Name() string { return config.ProviderAnthropic }

// GetModel 模型名稱
func (c *Client) GetModel() string { return string(c.model) }

// Complete 發送 Messages 請求，取第一個文字區塊
func (c *Client) Complete(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: int64(req.MaxTokens),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	for _, m := range req.Messages {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == provider.RoleAssistant {
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(block))
			continue
		}
		params.Messages = append(params.Messages, anthropic.NewUserMessage(block))
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic API call failed: %w", err)
	}

	out := &provider.Response{
		StopReason: string(message.StopReason),
		Usage: provider.Usage{
			PromptTokens:     int(message.Usage.InputTokens),
			CompletionTokens: int(message.Usage.OutputTokens),
			TotalTokens:      int(message.Usage.InputTokens + message.Usage.OutputTokens),
		},
	}
	for _, block := range message.Content {
		if textBlock, ok := block.AsAny().(anthropic.TextBlock); ok {
			out.Content = textBlock.Text
			break
		}
	}

	common.LogInfo("Anthropic response received",
		zap.String("model", string(c.model)),
		zap.String("stop_reason", out.StopReason),
		zap.Int("content_length", len(out.Content)),
	)

	return out, nil
}

// Close SDK 無需釋放資源
func (c *Client) Close() error {
	return nil
}
