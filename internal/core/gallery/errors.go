package gallery

import (
	"errors"

	"github.com/weisyn/nftmint/internal/core/wallet"
)

var (
	// ErrMetadataFetch 某个 token 的元数据获取或解析失败
	ErrMetadataFetch = errors.New("metadata fetch failed")
	// ErrMintReverted 铸造交易已上链但执行失败
	ErrMintReverted = errors.New("mint transaction reverted")
)

// 错误分类，供页面展示不同的错误状态
const (
	KindWalletAbsent   = "wallet_absent"
	KindWalletRejected = "wallet_rejected"
	KindNetwork        = "network"
	KindMetadata       = "metadata"
	KindReverted       = "reverted"
)

// Classify 返回错误分类，nil 返回空串
// 无法归类的错误（RPC、节点、提交失败等）都视为 network
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, wallet.ErrWalletNotInstalled):
		return KindWalletAbsent
	case errors.Is(err, wallet.ErrWalletRequestRejected), errors.Is(err, wallet.ErrNoSigner):
		return KindWalletRejected
	case errors.Is(err, ErrMetadataFetch):
		return KindMetadata
	case errors.Is(err, ErrMintReverted):
		return KindReverted
	default:
		return KindNetwork
	}
}
