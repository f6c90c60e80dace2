package common

import (
	"errors"
	"net/http"
)

// ChefUnavailableMessage 所有失敗共用的對外訊息
const ChefUnavailableMessage = "Oops, our chef is taking a break! 🍳 Try again."

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Error   string `json:"error"`             // 對外訊息
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap 支援 errors.Is / errors.As
func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is 以錯誤代碼比對
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// Wrap 以預定義錯誤為樣板包裝原始錯誤
func (e *CustomError) Wrap(err error) *CustomError {
	return NewError(e.Code, e.Message, e.Status, err)
}

// ErrorCode 取得錯誤代碼，非 CustomError 時回傳 INTERNAL_ERROR
func ErrorCode(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ErrCodeInternalError
}

// 預定義錯誤代碼
const (
	ErrCodeInvalidRequest   = "INVALID_REQUEST"    // 400
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED" // 405

	ErrCodeInternalError   = "INTERNAL_ERROR"      // 500
	ErrCodeConfiguration   = "CONFIGURATION_ERROR" // 500
	ErrCodeProvider        = "PROVIDER_ERROR"      // 500
	ErrCodeMalformedOutput = "MALFORMED_OUTPUT"    // 500
)

// 預定義錯誤
var (
	ErrInvalidRequest   = NewError(ErrCodeInvalidRequest, "invalid request body", http.StatusBadRequest, nil)
	ErrBodyTooLarge     = NewError(ErrCodeInvalidRequest, "request body too large", http.StatusRequestEntityTooLarge, nil)
	ErrMethodNotAllowed = NewError(ErrCodeMethodNotAllowed, "Method not allowed", http.StatusMethodNotAllowed, nil)

	ErrInternalError   = NewError(ErrCodeInternalError, "internal error", http.StatusInternalServerError, nil)
	ErrConfiguration   = NewError(ErrCodeConfiguration, "completion provider is not configured", http.StatusInternalServerError, nil)
	ErrProvider        = NewError(ErrCodeProvider, "completion provider failed", http.StatusInternalServerError, nil)
	ErrMalformedOutput = NewError(ErrCodeMalformedOutput, "completion output is not valid JSON", http.StatusInternalServerError, nil)
)
