// Package types provides HTTP error type definitions.
package types

// ErrorResponse 统一错误响应格式
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	Code      string `json:"code"`                // 错误码
	Kind      string `json:"kind"`                // 错误分类，页面据此展示不同状态
	Message   string `json:"message"`             // 错误消息
	RequestID string `json:"requestId,omitempty"` // 请求ID
}

// 错误码常量
const (
	ErrWalletNotInstalled = "WALLET_NOT_INSTALLED"
	ErrWalletRejected     = "WALLET_REJECTED"
	ErrMetadataFetch      = "METADATA_FETCH_FAILED"
	ErrExecutionReverted  = "EXECUTION_REVERTED"
	ErrUpstream           = "UPSTREAM_UNAVAILABLE"
	ErrInvalidArgument    = "INVALID_ARGUMENT"
	ErrInternal           = "INTERNAL"
)

// NewErrorResponse 创建错误响应
func NewErrorResponse(code, kind, message string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Kind:    kind,
			Message: message,
		},
	}
}

// WithRequestID 添加请求ID
func (e *ErrorResponse) WithRequestID(requestID string) *ErrorResponse {
	e.Error.RequestID = requestID
	return e
}
