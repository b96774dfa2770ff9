package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/nftmint/internal/core/contract/nft"
	logimpl "github.com/weisyn/nftmint/internal/core/infrastructure/log"
)

type fakeCapability struct {
	accounts []string
	err      error
	methods  []string
}

func (f *fakeCapability) Request(ctx context.Context, method string) ([]string, error) {
	f.methods = append(f.methods, method)
	return f.accounts, f.err
}

func (f *fakeCapability) Backend() nft.Backend { return nil }

func (f *fakeCapability) Transactor(ctx context.Context) (*bind.TransactOpts, error) {
	return nil, ErrNoSigner
}

type recordingAlerter struct {
	alerts []string
}

func (r *recordingAlerter) Alert(message string) {
	r.alerts = append(r.alerts, message)
}

// TestCheckConnectionNoWallet 钱包不存在时告警且不查询
func TestCheckConnectionNoWallet(t *testing.T) {
	alerter := &recordingAlerter{}
	bridge := NewBridge(nil, alerter, logimpl.NewNop())

	account, err := bridge.CheckConnection(context.Background())
	assert.ErrorIs(t, err, ErrWalletNotInstalled)
	assert.True(t, account.IsZero())
	assert.Equal(t, []string{InstallWalletMessage}, alerter.alerts)
	assert.Nil(t, bridge.Capability())
}

// TestCheckConnectionFirstAccount 取第一个地址作为会话账户
func TestCheckConnectionFirstAccount(t *testing.T) {
	capability := &fakeCapability{accounts: []string{"0xaaa", "0xbbb"}}
	alerter := &recordingAlerter{}
	bridge := NewBridge(capability, alerter, logimpl.NewNop())

	account, err := bridge.CheckConnection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0xaaa", account.String())
	assert.Equal(t, account, bridge.Account())
	assert.Equal(t, []string{MethodAccounts}, capability.methods)
	assert.Empty(t, alerter.alerts)
}

// TestCheckConnectionEmpty 没有授权账户时不报错
func TestCheckConnectionEmpty(t *testing.T) {
	bridge := NewBridge(&fakeCapability{}, nil, logimpl.NewNop())

	account, err := bridge.CheckConnection(context.Background())
	require.NoError(t, err)
	assert.True(t, account.IsZero())
	assert.True(t, bridge.Account().IsZero())
}

// TestCheckConnectionRejected 请求失败只记录日志，不告警
func TestCheckConnectionRejected(t *testing.T) {
	cause := errors.New("user rejected the request")
	alerter := &recordingAlerter{}
	bridge := NewBridge(&fakeCapability{err: cause}, alerter, logimpl.NewNop())

	account, err := bridge.CheckConnection(context.Background())
	assert.ErrorIs(t, err, ErrWalletRequestRejected)
	assert.ErrorIs(t, err, cause)
	assert.True(t, account.IsZero())
	assert.Empty(t, alerter.alerts)
}

func TestCheckConnectionNilLogger(t *testing.T) {
	bridge := NewBridge(&fakeCapability{accounts: []string{"0xccc"}}, nil, nil)
	account, err := bridge.CheckConnection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0xccc", account.String())
}
