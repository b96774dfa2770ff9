// Package metadata 获取 token 元数据文档
package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/weisyn/nftmint/pkg/types"
)

// ErrBadStatus 元数据服务返回非 2xx 状态
var ErrBadStatus = errors.New("unexpected metadata status")

// Fetcher 元数据获取器
type Fetcher interface {
	Fetch(ctx context.Context, uri string) (types.TokenMetadata, error)
}

// HTTPFetcher 基于 resty 的元数据获取器
// 普通 GET，不带认证，不重试，不缓存
type HTTPFetcher struct {
	client *resty.Client
}

// NewHTTPFetcher 创建元数据获取器，httpClient 为 nil 时使用默认客户端
func NewHTTPFetcher(httpClient *http.Client) *HTTPFetcher {
	var client *resty.Client
	if httpClient != nil {
		client = resty.NewWithClient(httpClient)
	} else {
		client = resty.New()
	}
	client.SetRetryCount(0)
	client.SetHeader("Accept", "application/json")
	return &HTTPFetcher{client: client}
}

// Fetch 获取并解析 uri 处的元数据
func (f *HTTPFetcher) Fetch(ctx context.Context, uri string) (types.TokenMetadata, error) {
	var meta types.TokenMetadata

	resp, err := f.client.R().SetContext(ctx).Get(uri)
	if err != nil {
		return meta, fmt.Errorf("GET %s: %w", uri, err)
	}
	if !resp.IsSuccess() {
		return meta, fmt.Errorf("%w: GET %s: %s", ErrBadStatus, uri, resp.Status())
	}

	// 元数据服务经常返回 text/plain，这里不依赖 Content-Type 自动解析
	if err := json.Unmarshal(resp.Body(), &meta); err != nil {
		return meta, fmt.Errorf("解析元数据 %s 失败: %w", uri, err)
	}
	return meta, nil
}

var _ Fetcher = (*HTTPFetcher)(nil)
