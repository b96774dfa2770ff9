// Package config 提供应用配置管理功能
//
// 配置只来自环境变量（可选 .env 文件），启动时一次性加载并校验，
// 之后以 *Config 的形式注入各模块，不再读取全局环境。
package config

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	eventconfig "github.com/weisyn/nftmint/internal/config/event"
	logconfig "github.com/weisyn/nftmint/internal/config/log"
	"github.com/weisyn/nftmint/pkg/types"
)

// 环境变量名
const (
	EnvNetwork           = "NETWORK"
	EnvAlchemyKey        = "ALCHEMY_KEY"
	EnvAccountPrivateKey = "ACCOUNT_PRIVATE_KEY"
	EnvContractAddress   = "NFT_CONTRACT_ADDRESS"
	EnvBeneficiary       = "MINT_BENEFICIARY"
	EnvMintPrice         = "MINT_PRICE"
	EnvExplorerURL       = "EXPLORER_URL"
	EnvHTTPAddr          = "HTTP_ADDR"
	EnvJournalPath       = "JOURNAL_PATH"
	EnvLogLevel          = "LOG_LEVEL"
	EnvLogFile           = "LOG_FILE"
)

// 默认值
const (
	DefaultNetwork         = "rinkeby"
	DefaultContractAddress = "0x1A1AAbEEEc644BA425b00A5Bb942a8EfAA06ec9e"
	DefaultBeneficiary     = "0xD837c7c67BD3A63E9D6ece6752F130A55d64BDB5"
	DefaultMintPrice       = "0.008"
	DefaultHTTPAddr        = ":8080"
	DefaultJournalPath     = "./data/journal"

	// NetworkLocalhost 本地开发节点
	NetworkLocalhost = "localhost"
)

// etherDecimals ether 与 wei 的小数位差
const etherDecimals = 18

// ErrMissingVariable 必需的环境变量缺失
var ErrMissingVariable = errors.New("missing environment variable")

// ErrInvalidVariable 环境变量取值非法
var ErrInvalidVariable = errors.New("invalid environment variable")

// LookupFunc 环境变量查找函数，签名与 os.LookupEnv 一致
type LookupFunc func(key string) (string, bool)

// Requirement 加载后的额外校验
type Requirement func(*Config) error

// Config 应用配置
type Config struct {
	Network           string
	AlchemyKey        string
	AccountPrivateKey string
	ContractAddress   common.Address
	Beneficiary       common.Address
	MintPrice         decimal.Decimal // 单位 ether
	ExplorerURL       string
	HTTPAddr          string
	JournalPath       string

	log   *logconfig.LogOptions
	event *eventconfig.EventOptions
}

// RequireSigner 要求提供签名私钥
// 部署、铸造、提现等需要签名的操作在启动时即失败，而不是在第一次交易时
func RequireSigner(c *Config) error {
	if c.AccountPrivateKey == "" {
		return fmt.Errorf("%w: %s", ErrMissingVariable, EnvAccountPrivateKey)
	}
	return nil
}

// FromEnvironment 读取 .env 文件（若存在）后从进程环境加载配置
// .env 中的值不会覆盖已经存在的环境变量
func FromEnvironment(envFiles []string, reqs ...Requirement) (*Config, error) {
	if err := loadDotEnv(envFiles); err != nil {
		return nil, err
	}
	return Load(os.LookupEnv, reqs...)
}

func loadDotEnv(files []string) error {
	if len(files) == 0 {
		// 默认 .env 可有可无
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("加载 .env 文件失败: %w", err)
	}
	return nil
}

// Load 使用给定的查找函数加载并校验配置
func Load(lookup LookupFunc, reqs ...Requirement) (*Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	c := &Config{
		Network:           strings.ToLower(get(EnvNetwork, DefaultNetwork)),
		AlchemyKey:        get(EnvAlchemyKey, ""),
		AccountPrivateKey: strings.TrimPrefix(get(EnvAccountPrivateKey, ""), "0x"),
		HTTPAddr:          get(EnvHTTPAddr, DefaultHTTPAddr),
		JournalPath:       get(EnvJournalPath, DefaultJournalPath),
	}

	if c.Network != NetworkLocalhost && c.AlchemyKey == "" {
		return nil, fmt.Errorf("%w: %s (network %s)", ErrMissingVariable, EnvAlchemyKey, c.Network)
	}

	var err error
	if c.ContractAddress, err = parseAddress(EnvContractAddress, get(EnvContractAddress, DefaultContractAddress)); err != nil {
		return nil, err
	}
	if c.Beneficiary, err = parseAddress(EnvBeneficiary, get(EnvBeneficiary, DefaultBeneficiary)); err != nil {
		return nil, err
	}

	price := get(EnvMintPrice, DefaultMintPrice)
	c.MintPrice, err = decimal.NewFromString(price)
	if err != nil || !c.MintPrice.IsPositive() {
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidVariable, EnvMintPrice, price)
	}

	c.ExplorerURL = strings.TrimRight(get(EnvExplorerURL, DefaultExplorerURL(c.Network)), "/")

	userLog := &types.UserLogConfig{}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		userLog.Level = &v
	}
	if v, ok := lookup(EnvLogFile); ok && v != "" {
		userLog.FilePath = &v
	}
	c.log = logconfig.New(userLog).GetOptions()
	c.event = eventconfig.DefaultOptions()

	for _, req := range reqs {
		if err := req(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func parseAddress(key, value string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("%w: %s=%q is not a hex address", ErrInvalidVariable, key, value)
	}
	return common.HexToAddress(value), nil
}

// DefaultExplorerURL 返回网络对应的区块浏览器地址
// 本地网络没有浏览器，返回空串
func DefaultExplorerURL(network string) string {
	switch network {
	case NetworkLocalhost:
		return ""
	case "mainnet", "homestead":
		return "https://etherscan.io"
	default:
		return "https://" + network + ".etherscan.io"
	}
}

// MintPriceWei 返回铸造价格（wei）
func (c *Config) MintPriceWei() *big.Int {
	return c.MintPrice.Shift(etherDecimals).BigInt()
}

// IsLocal 是否连接本地节点
func (c *Config) IsLocal() bool {
	return c.Network == NetworkLocalhost
}

// GetLog 获取日志配置选项
func (c *Config) GetLog() *logconfig.LogOptions {
	if c.log == nil {
		c.log = logconfig.DefaultOptions()
	}
	return c.log
}

// GetEvent 获取事件配置选项
func (c *Config) GetEvent() *eventconfig.EventOptions {
	if c.event == nil {
		c.event = eventconfig.DefaultOptions()
	}
	return c.event
}
