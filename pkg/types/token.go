package types

import (
	"math/big"
	"time"
)

// Account 钱包账户标识
// 空字符串表示未连接（没有中间状态）
type Account string

// IsZero 是否未连接
func (a Account) IsZero() bool {
	return a == ""
}

// String 返回地址字符串
func (a Account) String() string {
	return string(a)
}

// TokenMetadata 代币元数据记录
// 对应 tokenURI 指向的 JSON 文档，至少包含 image 和 name
type TokenMetadata struct {
	Image string `json:"image"`
	Name  string `json:"name"`
}

// MintReceipt 已确认的铸造结果
type MintReceipt struct {
	TxHash      string    `json:"tx_hash"`
	Beneficiary string    `json:"beneficiary"`
	ValueWei    *big.Int  `json:"value_wei"`
	BlockNumber uint64    `json:"block_number"`
	ExplorerURL string    `json:"explorer_url,omitempty"`
	MintedAt    time.Time `json:"minted_at"`
}
