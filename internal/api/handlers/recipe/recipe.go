package recipe

import (
	"errors"
	"io"
	"net/http"

	recipeService "budget-recipe-api/internal/core/recipe"
	"budget-recipe-api/internal/pkg/common"
	"budget-recipe-api/internal/pkg/metrics"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 食譜處理程序
type Handler struct {
	recipeService *recipeService.Service
	exposeDetails bool
}

// NewHandler 創建新的食譜處理程序；exposeDetails 僅在開發環境開啟
func NewHandler(recipeService *recipeService.Service, exposeDetails bool) *Handler {
	return &Handler{
		recipeService: recipeService,
		exposeDetails: exposeDetails,
	}
}

// HandleRecipe 依預算、食材或驚喜模式生成食譜
func (h *Handler) HandleRecipe(c *gin.Context) {
	requestID := requestid.Get(c)
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}

	if c.Request.Method != http.MethodPost {
		common.LogInfo("Method not allowed",
			zap.String("method", c.Request.Method),
			zap.String("request_id", requestID),
		)
		c.Header("Allow", http.MethodPost)
		c.JSON(http.StatusMethodNotAllowed, common.ErrorResponse{Error: common.ErrMethodNotAllowed.Message})
		return
	}

	var req recipeService.Request
	if c.Request.Body != nil {
		// 空的請求體視為所有欄位皆省略
		if err := common.DecodeJSON(c.Request.Body, &req); err != nil && !errors.Is(err, io.EOF) {
			// 超過大小限制同樣走統一的 500 回應
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				h.fail(c, requestID, common.ErrBodyTooLarge.Wrap(err))
				return
			}
			h.fail(c, requestID, common.ErrInvalidRequest.Wrap(err))
			return
		}
	}

	result, err := h.recipeService.Generate(c.Request.Context(), req, requestID)
	if err != nil {
		h.fail(c, requestID, err)
		return
	}

	metrics.RecipeGenerations.WithLabelValues(h.providerName(), metrics.OutcomeSuccess).Inc()
	c.JSON(http.StatusOK, result.Raw)
}

// fail 記錄內部錯誤類型，對外統一回應 500
func (h *Handler) fail(c *gin.Context, requestID string, err error) {
	code := common.ErrorCode(err)
	_ = c.Error(err)

	common.LogError("食譜生成失敗",
		zap.Error(err),
		zap.String("error_code", code),
		zap.String("request_id", requestID),
	)
	metrics.RecipeGenerations.WithLabelValues(h.providerName(), outcomeFor(code)).Inc()

	// 對外只回固定訊息，細節僅在開發環境附上
	resp := common.ErrorResponse{Error: common.ChefUnavailableMessage}
	if h.exposeDetails {
		resp.Details = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}

func (h *Handler) providerName() string {
	if p := h.recipeService.Provider(); p != nil {
		return p.Name()
	}
	return "none"
}

func outcomeFor(code string) string {
	switch code {
	case common.ErrCodeConfiguration:
		return metrics.OutcomeConfiguration
	case common.ErrCodeProvider:
		return metrics.OutcomeProvider
	case common.ErrCodeMalformedOutput:
		return metrics.OutcomeMalformedOutput
	case common.ErrCodeInvalidRequest:
		return metrics.OutcomeInvalidRequest
	default:
		return common.ErrCodeInternalError
	}
}
