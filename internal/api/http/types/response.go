// Package types provides HTTP response type definitions.
package types

import "github.com/weisyn/nftmint/pkg/types"

// SuccessResponse 统一成功响应格式
type SuccessResponse struct {
	Data      interface{} `json:"data"`
	RequestID string      `json:"requestId,omitempty"`
}

// NewSuccessResponse 创建成功响应
func NewSuccessResponse(data interface{}) *SuccessResponse {
	return &SuccessResponse{
		Data: data,
	}
}

// WithRequestID 添加请求ID
func (r *SuccessResponse) WithRequestID(requestID string) *SuccessResponse {
	r.RequestID = requestID
	return r
}

// AccountResponse 当前会话账户
type AccountResponse struct {
	Account   string `json:"account"`
	Connected bool   `json:"connected"`
}

// GalleryResponse 画廊内容
type GalleryResponse struct {
	Items   []types.TokenMetadata `json:"items"`
	Loading bool                  `json:"loading"`
}

// StatusResponse 加载状态
type StatusResponse struct {
	Loading bool   `json:"loading"`
	Account string `json:"account,omitempty"`
	Items   int    `json:"items"`
}

// MintResponse 铸造结果
type MintResponse struct {
	Receipt *types.MintReceipt `json:"receipt"`
	Message string             `json:"message"`
}
