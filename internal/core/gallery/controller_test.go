package gallery

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/nftmint/internal/core/contract/nft"
	clockimpl "github.com/weisyn/nftmint/internal/core/infrastructure/clock"
	logimpl "github.com/weisyn/nftmint/internal/core/infrastructure/log"
	"github.com/weisyn/nftmint/internal/core/infrastructure/metrics"
	"github.com/weisyn/nftmint/internal/core/wallet"
	"github.com/weisyn/nftmint/pkg/types"
)

var beneficiary = common.HexToAddress("0xD837c7c67BD3A63E9D6ece6752F130A55d64BDB5")

// ==================== 测试替身 ====================

type fakeCapability struct {
	accounts      []string
	transactorErr error
}

func (f *fakeCapability) Request(ctx context.Context, method string) ([]string, error) {
	return f.accounts, nil
}

func (f *fakeCapability) Backend() nft.Backend { return nil }

func (f *fakeCapability) Transactor(ctx context.Context) (*bind.TransactOpts, error) {
	if f.transactorErr != nil {
		return nil, f.transactorErr
	}
	return &bind.TransactOpts{From: common.HexToAddress("0xaaaa")}, nil
}

type fakeContract struct {
	counter    *big.Int
	counterErr error
	uriCalls   []int64
	mintErr    error
	waitErr    error
	minted     []*bind.TransactOpts
	recipients []common.Address
	onMint     func()
}

func (f *fakeContract) Address() common.Address { return common.HexToAddress("0x1") }

func (f *fakeContract) GetCurrentTokenID(ctx context.Context) (*big.Int, error) {
	return f.counter, f.counterErr
}

func (f *fakeContract) TokenURI(ctx context.Context, id *big.Int) (string, error) {
	f.uriCalls = append(f.uriCalls, id.Int64())
	return fmt.Sprintf("https://meta.example/%d.json", id.Int64()), nil
}

func (f *fakeContract) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	return big.NewInt(0), nil
}

func (f *fakeContract) Owner(ctx context.Context) (common.Address, error) {
	return common.Address{}, nil
}

func (f *fakeContract) MintTo(opts *bind.TransactOpts, recipient common.Address) (*ethtypes.Transaction, error) {
	if f.onMint != nil {
		f.onMint()
	}
	if f.mintErr != nil {
		return nil, f.mintErr
	}
	f.minted = append(f.minted, opts)
	f.recipients = append(f.recipients, recipient)
	return ethtypes.NewTx(&ethtypes.LegacyTx{
		Nonce:    uint64(len(f.minted)),
		To:       &recipient,
		Value:    opts.Value,
		Gas:      500_000,
		GasPrice: big.NewInt(1),
	}), nil
}

func (f *fakeContract) WithdrawPayments(opts *bind.TransactOpts, payee common.Address) (*ethtypes.Transaction, error) {
	return nil, errors.New("not used")
}

func (f *fakeContract) WaitMined(ctx context.Context, tx *ethtypes.Transaction) (*ethtypes.Receipt, error) {
	if f.waitErr != nil {
		return nil, f.waitErr
	}
	return &ethtypes.Receipt{TxHash: tx.Hash(), Status: ethtypes.ReceiptStatusSuccessful, BlockNumber: big.NewInt(99)}, nil
}

type fakeFetcher struct {
	uris    []string
	failOn  string
	onFetch func()
}

func (f *fakeFetcher) Fetch(ctx context.Context, uri string) (types.TokenMetadata, error) {
	if f.onFetch != nil {
		f.onFetch()
	}
	f.uris = append(f.uris, uri)
	if f.failOn != "" && strings.HasSuffix(uri, f.failOn) {
		return types.TokenMetadata{}, errors.New("GET " + uri + ": 404 Not Found")
	}
	name := strings.TrimSuffix(uri[strings.LastIndex(uri, "/")+1:], ".json")
	return types.TokenMetadata{Image: "https://img.example/" + name + ".png", Name: "Nice #" + name}, nil
}

type recordingNotifier struct {
	alerts    []string
	successes []string
	links     []string
	onSuccess func()
}

func (r *recordingNotifier) Alert(message string) { r.alerts = append(r.alerts, message) }

func (r *recordingNotifier) Success(message, link string) {
	if r.onSuccess != nil {
		r.onSuccess()
	}
	r.successes = append(r.successes, message)
	r.links = append(r.links, link)
}

type memoryJournal struct {
	receipts []types.MintReceipt
	err      error
}

func (m *memoryJournal) Append(ctx context.Context, receipt types.MintReceipt) error {
	if m.err != nil {
		return m.err
	}
	m.receipts = append(m.receipts, receipt)
	return nil
}

type fixture struct {
	controller *Controller
	contract   *fakeContract
	fetcher    *fakeFetcher
	notifier   *recordingNotifier
	journal    *memoryJournal
	clock      *clockimpl.MockClock
	binds      int
}

var fixtureTime = time.Date(2022, 3, 4, 5, 6, 7, 0, time.UTC)

func newFixture(t *testing.T, capability wallet.Capability, counter int64) *fixture {
	t.Helper()
	f := &fixture{
		contract: &fakeContract{counter: big.NewInt(counter)},
		fetcher:  &fakeFetcher{},
		notifier: &recordingNotifier{},
		journal:  &memoryJournal{},
		clock:    clockimpl.NewMockClock(fixtureTime),
	}
	bridge := wallet.NewBridge(capability, f.notifier, logimpl.NewNop())
	f.controller = New(Params{
		Bridge: bridge,
		Bind: func(backend nft.Backend) (nft.Contract, error) {
			f.binds++
			return f.contract, nil
		},
		Fetcher:  f.fetcher,
		Notifier: f.notifier,
		Journal:  f.journal,
		Metrics:  metrics.New(),
		Clock:    f.clock,
		Logger:   logimpl.NewNop(),
		Options: Options{
			Beneficiary: beneficiary,
			PriceWei:    big.NewInt(8_000_000_000_000_000),
			ExplorerURL: "https://rinkeby.etherscan.io",
		},
	})
	return f
}

// ==================== 画廊刷新 ====================

// TestRefreshFetchesInOrder 计数为 n 时按顺序获取 1..n-1
func TestRefreshFetchesInOrder(t *testing.T) {
	for _, counter := range []int64{0, 1, 2, 3, 6} {
		t.Run(fmt.Sprintf("counter=%d", counter), func(t *testing.T) {
			f := newFixture(t, &fakeCapability{}, counter)

			items, err := f.controller.RefreshGallery(context.Background())
			require.NoError(t, err)

			expected := int64(0)
			if counter > 1 {
				expected = counter - 1
			}
			require.Len(t, f.fetcher.uris, int(expected))
			require.Len(t, items, int(expected))
			for i, id := range f.contract.uriCalls {
				assert.Equal(t, int64(i+1), id)
				assert.Equal(t, fmt.Sprintf("https://meta.example/%d.json", id), f.fetcher.uris[i])
			}
			assert.Equal(t, items, f.controller.Gallery())
			assert.False(t, f.controller.Loading())
		})
	}
}

// TestRefreshCounterThree 计数为 3 时只获取 1 和 2
func TestRefreshCounterThree(t *testing.T) {
	f := newFixture(t, &fakeCapability{}, 3)

	items, err := f.controller.RefreshGallery(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, f.contract.uriCalls)
	assert.Equal(t, []types.TokenMetadata{
		{Image: "https://img.example/1.png", Name: "Nice #1"},
		{Image: "https://img.example/2.png", Name: "Nice #2"},
	}, items)
}

// TestRefreshAbortKeepsPreviousGallery 第二个 token 404 时中止，画廊不变
func TestRefreshAbortKeepsPreviousGallery(t *testing.T) {
	f := newFixture(t, &fakeCapability{}, 2)
	ctx := context.Background()

	previous, err := f.controller.RefreshGallery(ctx)
	require.NoError(t, err)
	require.Len(t, previous, 1)

	f.contract.counter = big.NewInt(4)
	f.contract.uriCalls = nil
	f.fetcher.uris = nil
	f.fetcher.failOn = "/2.json"

	items, err := f.controller.RefreshGallery(ctx)
	require.Error(t, err)
	assert.Nil(t, items)
	assert.ErrorIs(t, err, ErrMetadataFetch)
	assert.Equal(t, KindMetadata, Classify(err))

	// 只获取了 1 和 2，3 没有尝试
	assert.Equal(t, []int64{1, 2}, f.contract.uriCalls)
	assert.Equal(t, previous, f.controller.Gallery())
	assert.False(t, f.controller.Loading())
}

// TestRefreshCounterError 读取计数失败
func TestRefreshCounterError(t *testing.T) {
	f := newFixture(t, &fakeCapability{}, 0)
	f.contract.counterErr = errors.New("dial tcp: connection refused")

	_, err := f.controller.RefreshGallery(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindNetwork, Classify(err))
	assert.Empty(t, f.fetcher.uris)
	assert.False(t, f.controller.Loading())
	assert.Empty(t, f.controller.Gallery())
}

// TestRefreshLoadingDuringFetch 获取过程中加载标志为真
func TestRefreshLoadingDuringFetch(t *testing.T) {
	f := newFixture(t, &fakeCapability{}, 3)
	var observed []bool
	f.fetcher.onFetch = func() { observed = append(observed, f.controller.Loading()) }

	_, err := f.controller.RefreshGallery(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true}, observed)
	assert.False(t, f.controller.Loading())
}

// TestRefreshWithoutWallet 钱包不存在时不获取、不告警、不改变加载标志
func TestRefreshWithoutWallet(t *testing.T) {
	f := newFixture(t, nil, 3)

	_, err := f.controller.RefreshGallery(context.Background())
	assert.ErrorIs(t, err, wallet.ErrWalletNotInstalled)
	assert.Zero(t, f.binds)
	assert.Empty(t, f.fetcher.uris)
	assert.Empty(t, f.notifier.alerts)
	assert.False(t, f.controller.Loading())
}

// ==================== 页面加载 ====================

// TestLoadWithoutWallet 钱包不存在：告警，不获取，不铸造，画廊为空
func TestLoadWithoutWallet(t *testing.T) {
	f := newFixture(t, nil, 3)

	result := f.controller.Load(context.Background())
	assert.ErrorIs(t, result.ConnectErr, wallet.ErrWalletNotInstalled)
	assert.NoError(t, result.RefreshErr)
	assert.True(t, result.Account.IsZero())
	assert.Empty(t, result.Gallery)
	assert.Equal(t, []string{wallet.InstallWalletMessage}, f.notifier.alerts)
	assert.Zero(t, f.binds)
	assert.Empty(t, f.fetcher.uris)
	assert.Empty(t, f.contract.minted)
}

// TestLoadConnected 钱包已授权时设置账户并刷新画廊
func TestLoadConnected(t *testing.T) {
	f := newFixture(t, &fakeCapability{accounts: []string{"0xabc"}}, 3)

	result := f.controller.Load(context.Background())
	require.NoError(t, result.ConnectErr)
	require.NoError(t, result.RefreshErr)
	assert.Equal(t, types.Account("0xabc"), result.Account)
	assert.Equal(t, types.Account("0xabc"), f.controller.Account())
	assert.Len(t, result.Gallery, 2)
	assert.Empty(t, f.notifier.alerts)
}

// TestLoadRefreshFailure 刷新失败时返回之前的画廊
func TestLoadRefreshFailure(t *testing.T) {
	f := newFixture(t, &fakeCapability{}, 3)
	f.fetcher.failOn = "/1.json"

	result := f.controller.Load(context.Background())
	assert.NoError(t, result.ConnectErr)
	assert.ErrorIs(t, result.RefreshErr, ErrMetadataFetch)
	assert.Empty(t, result.Gallery)
	assert.NotNil(t, result.Gallery)
}

// ==================== 铸造 ====================

// TestMintSuccess 成功后通知包含交易哈希，并写入记录
func TestMintSuccess(t *testing.T) {
	f := newFixture(t, &fakeCapability{}, 1)
	var loadingDuringMint bool
	f.contract.onMint = func() { loadingDuringMint = f.controller.Loading() }

	receipt, err := f.controller.Mint(context.Background())
	require.NoError(t, err)

	assert.True(t, loadingDuringMint)
	assert.False(t, f.controller.Loading())

	require.Len(t, f.contract.minted, 1)
	assert.Equal(t, 0, f.contract.minted[0].Value.Cmp(big.NewInt(8_000_000_000_000_000)))
	assert.Equal(t, beneficiary, f.contract.recipients[0])

	require.Len(t, f.notifier.successes, 1)
	assert.Contains(t, f.notifier.successes[0], receipt.TxHash)
	assert.Equal(t, "Success, see transaction: https://rinkeby.etherscan.io/tx/"+receipt.TxHash, f.notifier.successes[0])
	assert.Equal(t, receipt.ExplorerURL, f.notifier.links[0])

	assert.Equal(t, uint64(99), receipt.BlockNumber)
	assert.Equal(t, beneficiary.Hex(), receipt.Beneficiary)
	assert.Equal(t, fixtureTime, receipt.MintedAt)
	require.Len(t, f.journal.receipts, 1)
	assert.Equal(t, receipt.TxHash, f.journal.receipts[0].TxHash)

	// 铸造成功不刷新画廊
	assert.Empty(t, f.contract.uriCalls)
}

// TestMintClearsLoadingBeforeNotify 成功通知发出时加载标志已清除
func TestMintClearsLoadingBeforeNotify(t *testing.T) {
	f := newFixture(t, &fakeCapability{}, 1)
	loadingAtNotify := true
	f.notifier.onSuccess = func() { loadingAtNotify = f.controller.Loading() }

	_, err := f.controller.Mint(context.Background())
	require.NoError(t, err)
	require.Len(t, f.notifier.successes, 1)
	assert.False(t, loadingAtNotify)
}

// TestMintInsufficientBalance 提交失败：加载标志清除，无通知
func TestMintInsufficientBalance(t *testing.T) {
	f := newFixture(t, &fakeCapability{}, 1)
	f.contract.mintErr = errors.New("insufficient funds for gas * price + value")

	receipt, err := f.controller.Mint(context.Background())
	require.Error(t, err)
	assert.Nil(t, receipt)
	assert.Equal(t, KindNetwork, Classify(err))
	assert.False(t, f.controller.Loading())
	assert.Empty(t, f.notifier.successes)
	assert.Empty(t, f.journal.receipts)
}

// TestMintReverted 回执失败归类为 reverted
func TestMintReverted(t *testing.T) {
	f := newFixture(t, &fakeCapability{}, 1)
	f.contract.waitErr = fmt.Errorf("%w: 0x01", nft.ErrReverted)

	_, err := f.controller.Mint(context.Background())
	assert.ErrorIs(t, err, ErrMintReverted)
	assert.Equal(t, KindReverted, Classify(err))
	assert.False(t, f.controller.Loading())
	assert.Empty(t, f.notifier.successes)
}

// TestMintNoSigner 钱包无法签名
func TestMintNoSigner(t *testing.T) {
	f := newFixture(t, &fakeCapability{transactorErr: wallet.ErrNoSigner}, 1)

	_, err := f.controller.Mint(context.Background())
	assert.ErrorIs(t, err, wallet.ErrNoSigner)
	assert.Equal(t, KindWalletRejected, Classify(err))
	assert.False(t, f.controller.Loading())
	assert.Empty(t, f.contract.minted)
}

// TestMintWithoutWallet 钱包不存在时为空操作
func TestMintWithoutWallet(t *testing.T) {
	f := newFixture(t, nil, 1)

	_, err := f.controller.Mint(context.Background())
	assert.ErrorIs(t, err, wallet.ErrWalletNotInstalled)
	assert.Equal(t, KindWalletAbsent, Classify(err))
	assert.Zero(t, f.binds)
	assert.Empty(t, f.notifier.successes)
	assert.False(t, f.controller.Loading())
}

// TestMintJournalFailure 记录写入失败不影响铸造结果
func TestMintJournalFailure(t *testing.T) {
	f := newFixture(t, &fakeCapability{}, 1)
	f.journal.err = errors.New("badger store is closing")

	receipt, err := f.controller.Mint(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, receipt)
	assert.Len(t, f.notifier.successes, 1)
}

// TestMintLocalExplorer 本地网络没有浏览器，通知仍包含交易哈希
func TestMintLocalExplorer(t *testing.T) {
	f := newFixture(t, &fakeCapability{}, 1)
	f.controller.opts.ExplorerURL = ""

	receipt, err := f.controller.Mint(context.Background())
	require.NoError(t, err)
	assert.Equal(t, receipt.TxHash, receipt.ExplorerURL)
	assert.Contains(t, f.notifier.successes[0], receipt.TxHash)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, "", Classify(nil))
	assert.Equal(t, KindWalletAbsent, Classify(fmt.Errorf("x: %w", wallet.ErrWalletNotInstalled)))
	assert.Equal(t, KindWalletRejected, Classify(wallet.ErrWalletRequestRejected))
	assert.Equal(t, KindNetwork, Classify(errors.New("boom")))
}
