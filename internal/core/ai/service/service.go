package service

import (
	"fmt"

	"budget-recipe-api/internal/core/ai/anthropic"
	"budget-recipe-api/internal/core/ai/groq"
	"budget-recipe-api/internal/core/ai/provider"
	"budget-recipe-api/internal/infrastructure/config"
	"budget-recipe-api/internal/pkg/common"

	"go.uber.org/zap"
)

// NewProvider 依設定建立補全供應商。
// API Key 缺失時回傳 CONFIGURATION_ERROR，呼叫端據此讓所有食譜請求回應 500。
func NewProvider(cfg *config.Config) (provider.Provider, error) {
	common.LogInfo("Completion provider credential check",
		zap.String("provider", cfg.LLM.Provider),
		zap.Bool("key_present", cfg.ActiveAPIKey() != ""),
		zap.String("key_prefix", config.MaskAPIKey(cfg.ActiveAPIKey())),
	)

	var (
		p   provider.Provider
		err error
	)
	switch cfg.LLM.Provider {
	case config.ProviderAnthropic:
		p, err = anthropic.NewClient(cfg.Anthropic)
	case config.ProviderGroq, "":
		p, err = groq.NewClient(cfg.Groq)
	default:
		err = fmt.Errorf("unsupported llm provider %q", cfg.LLM.Provider)
	}
	if err != nil {
		return nil, common.ErrConfiguration.Wrap(err)
	}

	common.LogInfo("Completion provider initialized",
		zap.String("provider", p.Name()),
		zap.String("model", p.GetModel()),
	)
	return p, nil
}
