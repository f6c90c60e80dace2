package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 支援的 LLM 供應商
const (
	ProviderGroq      = "groq"
	ProviderAnthropic = "anthropic"
)

// EnvDevelopment 開發環境，只有此環境會在錯誤回應中附上 details
const EnvDevelopment = "development"

// Config 應用配置
type Config struct {
	App          AppConfig       `mapstructure:"app"`
	Server       ServerConfig    `mapstructure:"server"`
	LLM          LLMConfig       `mapstructure:"llm"`
	Groq         GroqConfig      `mapstructure:"groq"`
	Anthropic    AnthropicConfig `mapstructure:"anthropic"`
	MaxBodyBytes int64           `mapstructure:"max_body_bytes"`
	LogLevel     string          `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// LLMConfig 供應商選擇；輸出 token 上限固定於 recipe.MaxOutputTokens
type LLMConfig struct {
	Provider string `mapstructure:"provider"`
}

// GroqConfig Groq (OpenAI 相容) 配置
type GroqConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// AnthropicConfig Anthropic 配置
type AnthropicConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// IsDevelopment 是否為開發環境
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.App.Env, EnvDevelopment)
}

// ActiveAPIKey 目前選用供應商的 API Key
func (c *Config) ActiveAPIKey() string {
	if c.LLM.Provider == ProviderAnthropic {
		return c.Anthropic.APIKey
	}
	return c.Groq.APIKey
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// .env 可有可無
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()

	// 設定預設值
	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	_ = v.BindEnv("app.env", "APP_ENV", "NODE_ENV")
	_ = v.BindEnv("app.debug", "APP_DEBUG")
	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("llm.provider", "LLM_PROVIDER")
	_ = v.BindEnv("groq.api_key", "GROQ_API_KEY")
	_ = v.BindEnv("groq.model", "GROQ_MODEL")
	_ = v.BindEnv("groq.base_url", "GROQ_BASE_URL")
	_ = v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("anthropic.model", "ANTHROPIC_MODEL")
	_ = v.BindEnv("anthropic.base_url", "ANTHROPIC_BASE_URL")
	_ = v.BindEnv("max_body_bytes", "MAX_BODY_BYTES")
	_ = v.BindEnv("log_level", "LOG_LEVEL")

	// 解析設定
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))

	// 驗證必要設定
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// MaskAPIKey 遮罩 API Key，只顯示前 4 個字符
func MaskAPIKey(key string) string {
	if key == "" {
		return "MISSING"
	}
	// 太短的 key 連前綴都不顯示
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..."
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "production")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.version", "1.0.0")

	// 伺服器設定
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.idle_timeout", "120s")

	// 供應商設定
	v.SetDefault("llm.provider", ProviderGroq)

	// Groq 設定
	v.SetDefault("groq.api_key", "")
	v.SetDefault("groq.model", "llama-3.3-70b-versatile")
	v.SetDefault("groq.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("groq.timeout", "60s")

	// Anthropic 設定
	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.base_url", "")
	v.SetDefault("anthropic.timeout", "60s")

	// 請求設定
	v.SetDefault("max_body_bytes", 1<<20) // 1MB
	v.SetDefault("log_level", "info")
}

// validateConfig 驗證設定；API Key 缺失不在此處理，由供應商初始化時判斷
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port <= 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證供應商
	switch config.LLM.Provider {
	case ProviderGroq, ProviderAnthropic:
	default:
		return fmt.Errorf("unsupported llm provider %q", config.LLM.Provider)
	}

	// 驗證請求體上限
	if config.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid max body bytes")
	}

	return nil
}
