package health

import (
	"net/http"
	"runtime"
	"time"

	recipeService "budget-recipe-api/internal/core/recipe"
	"budget-recipe-api/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Provider  *ProviderStatus        `json:"provider"`
	Runtime   map[string]interface{} `json:"runtime"`
}

// ProviderStatus 補全供應商狀態
type ProviderStatus struct {
	Name       string `json:"name"`
	Model      string `json:"model,omitempty"`
	Configured bool   `json:"configured"`
}

// Handler 健康檢查處理器
type Handler struct {
	cfg           *config.Config
	recipeService *recipeService.Service
}

// NewHandler 創建健康檢查處理器
func NewHandler(cfg *config.Config, recipeService *recipeService.Service) *Handler {
	return &Handler{cfg: cfg, recipeService: recipeService}
}

func (h *Handler) providerStatus() *ProviderStatus {
	status := &ProviderStatus{Name: h.cfg.LLM.Provider}
	if p := h.recipeService.Provider(); p != nil {
		status.Name = p.Name()
		status.Model = p.GetModel()
		status.Configured = true
	}
	return status
}

// HealthCheck 健康檢查
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.cfg.App.Version,
		Provider:  h.providerStatus(),
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	})
}

// ReadinessCheck 就緒檢查：供應商未設定時回應 503
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if !h.recipeService.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "not_ready",
			"provider": h.providerStatus(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
