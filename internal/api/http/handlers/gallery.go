// Package handlers 提供铸造页面的HTTP处理器
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/weisyn/nftmint/internal/api/http/middleware"
	apitypes "github.com/weisyn/nftmint/internal/api/http/types"
	"github.com/weisyn/nftmint/internal/core/notify"
	"github.com/weisyn/nftmint/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/nftmint/pkg/types"
)

// Controller 页面使用的控制器能力
type Controller interface {
	Account() types.Account
	Gallery() []types.TokenMetadata
	Loading() bool
	RefreshGallery(ctx context.Context) ([]types.TokenMetadata, error)
	Mint(ctx context.Context) (*types.MintReceipt, error)
}

// History 铸造记录查询
type History interface {
	List(ctx context.Context, limit int) ([]types.MintReceipt, error)
}

// GalleryHandlers 账户、画廊与铸造接口
type GalleryHandlers struct {
	controller Controller
	history    History
	logger     log.Logger
}

// NewGalleryHandlers 创建处理器，history 可以为 nil
func NewGalleryHandlers(controller Controller, history History, logger log.Logger) *GalleryHandlers {
	return &GalleryHandlers{
		controller: controller,
		history:    history,
		logger:     logger,
	}
}

// RegisterRoutes 注册路由
func (h *GalleryHandlers) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/account", h.GetAccount)
	api.GET("/gallery", h.GetGallery)
	api.POST("/gallery/refresh", h.RefreshGallery)
	api.POST("/mint", h.Mint)
	api.GET("/status", h.GetStatus)
	api.GET("/history", h.GetHistory)
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, apitypes.NewSuccessResponse(data).WithRequestID(middleware.GetRequestID(c)))
}

// GetAccount 当前会话账户
func (h *GalleryHandlers) GetAccount(c *gin.Context) {
	account := h.controller.Account()
	ok(c, apitypes.AccountResponse{
		Account:   account.String(),
		Connected: !account.IsZero(),
	})
}

// GetGallery 当前画廊
func (h *GalleryHandlers) GetGallery(c *gin.Context) {
	ok(c, apitypes.GalleryResponse{
		Items:   h.controller.Gallery(),
		Loading: h.controller.Loading(),
	})
}

// RefreshGallery 重新读取画廊
func (h *GalleryHandlers) RefreshGallery(c *gin.Context) {
	items, err := h.controller.RefreshGallery(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, apitypes.GalleryResponse{Items: items, Loading: h.controller.Loading()})
}

// Mint 铸造并等待确认
// 交易广播后客户端断开也要等到确认，否则成功通知和铸造记录会丢失
func (h *GalleryHandlers) Mint(c *gin.Context) {
	receipt, err := h.controller.Mint(context.WithoutCancel(c.Request.Context()))
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, apitypes.MintResponse{
		Receipt: receipt,
		Message: notify.SuccessMessage(receipt.ExplorerURL),
	})
}

// GetStatus 加载状态
func (h *GalleryHandlers) GetStatus(c *gin.Context) {
	ok(c, apitypes.StatusResponse{
		Loading: h.controller.Loading(),
		Account: h.controller.Account().String(),
		Items:   len(h.controller.Gallery()),
	})
}

// GetHistory 已确认的铸造记录，?limit=N 只返回最近 N 条
func (h *GalleryHandlers) GetHistory(c *gin.Context) {
	if h.history == nil {
		ok(c, []types.MintReceipt{})
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, apitypes.NewErrorResponse(
				apitypes.ErrInvalidArgument, "", "limit must be a non-negative integer"))
			return
		}
		limit = n
	}
	receipts, err := h.history.List(c.Request.Context(), limit)
	if err != nil {
		if h.logger != nil {
			h.logger.Errorf("读取铸造记录失败: %v", err)
		}
		c.JSON(http.StatusInternalServerError, apitypes.NewErrorResponse(
			apitypes.ErrInternal, "", err.Error()))
		return
	}
	if receipts == nil {
		receipts = []types.MintReceipt{}
	}
	ok(c, receipts)
}
