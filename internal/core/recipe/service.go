package recipe

import (
	"context"
	"time"

	"budget-recipe-api/internal/core/ai/provider"
	"budget-recipe-api/internal/pkg/common"
	"budget-recipe-api/internal/pkg/metrics"

	"go.uber.org/zap"
)

// MaxOutputTokens 每次補全的輸出上限
const MaxOutputTokens = 1024

// rawLogLimit 記錄無法解析的原始輸出時的長度上限
const rawLogLimit = 4096

// Service 食譜生成服務，建立後不再變動，可被並發請求共用
type Service struct {
	provider provider.Provider
	setupErr error
}

// NewService 創建食譜生成服務。
// p 為 nil 時 setupErr 說明原因，Generate 會直接回傳此錯誤而不發出任何網路請求。
func NewService(p provider.Provider, setupErr error) *Service {
	if p == nil && setupErr == nil {
		setupErr = common.ErrConfiguration
	}
	return &Service{
		provider: p,
		setupErr: setupErr,
	}
}

// Ready 供應商是否可用
func (s *Service) Ready() bool {
	return s.provider != nil
}

// Provider 目前的供應商，未設定時為 nil
func (s *Service) Provider() provider.Provider {
	return s.provider
}

// Generate 建立 prompt、呼叫一次供應商、清理並解析輸出
func (s *Service) Generate(ctx context.Context, req Request, requestID string) (*Result, error) {
	if s.provider == nil {
		return nil, s.setupErr
	}

	common.LogInfo("Calling completion provider",
		zap.String("request_id", requestID),
		zap.String("provider", s.provider.Name()),
		zap.Bool("has_budget", req.HasBudget()),
		zap.Int("ingredients_count", len(req.Ingredients)),
		zap.Bool("surprise_me", req.SurpriseMe),
	)

	start := time.Now()
	resp, err := s.provider.Complete(ctx, &provider.Request{
		System: SystemPrompt(),
		Messages: []provider.Message{
			{Role: provider.RoleUser, Content: UserPrompt(req)},
		},
		MaxTokens: MaxOutputTokens,
	})
	elapsed := time.Since(start)
	metrics.ProviderLatency.WithLabelValues(s.provider.Name()).Observe(elapsed.Seconds())
	common.LogAICall(s.provider.Name(), s.provider.GetModel(), elapsed, err, requestID)
	if err != nil {
		return nil, common.ErrProvider.Wrap(err)
	}

	content := ""
	if resp != nil {
		content = resp.Content
	}

	result, err := ParseRecipe(content)
	if err != nil {
		common.LogError("Failed to parse recipe JSON",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.String("raw_output", common.Truncate(content, rawLogLimit)),
		)
		return nil, err
	}

	common.LogInfo("Recipe parsed successfully",
		zap.String("request_id", requestID),
		zap.Bool("typed", result.Typed),
		zap.Bool("has_dish_name", result.Summary.DishName != ""),
		zap.String("dish_name", result.Summary.DishName),
		zap.Int("ingredient_count", len(result.Summary.Ingredients)),
		zap.Int("step_count", len(result.Summary.Steps)),
	)

	return result, nil
}
