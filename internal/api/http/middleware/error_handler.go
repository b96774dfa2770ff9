package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/weisyn/nftmint/internal/api/http/types"
	"github.com/weisyn/nftmint/internal/core/gallery"
)

// ErrorHandler 错误处理中间件
// 处理器通过 c.Error 上报错误，这里按分类写出统一的错误响应
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		kind := gallery.Classify(err)
		status, code := StatusFor(kind)

		logger.Warn("HTTP error",
			zap.String("kind", kind),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))

		c.AbortWithStatusJSON(status,
			types.NewErrorResponse(code, kind, err.Error()).WithRequestID(GetRequestID(c)))
	}
}

// StatusFor 错误分类对应的HTTP状态码和错误码
func StatusFor(kind string) (int, string) {
	switch kind {
	case gallery.KindWalletAbsent:
		return http.StatusPreconditionFailed, types.ErrWalletNotInstalled
	case gallery.KindWalletRejected:
		return http.StatusForbidden, types.ErrWalletRejected
	case gallery.KindMetadata:
		return http.StatusBadGateway, types.ErrMetadataFetch
	case gallery.KindReverted:
		return http.StatusUnprocessableEntity, types.ErrExecutionReverted
	case gallery.KindNetwork:
		return http.StatusBadGateway, types.ErrUpstream
	default:
		return http.StatusInternalServerError, types.ErrInternal
	}
}
