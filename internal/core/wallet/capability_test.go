package wallet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRPCServer 只应答 eth_accounts 和 eth_chainId 的 JSON-RPC 节点
func newRPCServer(t *testing.T, accounts []string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
		switch req.Method {
		case "eth_accounts":
			resp["result"] = accounts
		case "eth_chainId":
			resp["result"] = "0x539"
		default:
			resp["error"] = map[string]interface{}{"code": -32601, "message": "method not found"}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)
	return server
}

// TestInjectedForwardsAccounts 无私钥时账户查询转发给节点
func TestInjectedForwardsAccounts(t *testing.T) {
	server := newRPCServer(t, []string{"0x00000000000000000000000000000000000000aa"})
	ctx := context.Background()

	w, err := NewInjected(ctx, server.URL, nil)
	require.NoError(t, err)
	defer w.Close()

	accounts, err := w.Request(ctx, MethodAccounts)
	require.NoError(t, err)
	assert.Equal(t, []string{"0x00000000000000000000000000000000000000aa"}, accounts)
	assert.NotNil(t, w.Backend())

	_, err = w.Transactor(ctx)
	assert.ErrorIs(t, err, ErrNoSigner)

	_, err = w.Request(ctx, "eth_sign")
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}

// TestInjectedWithKey 有私钥时账户为私钥地址，并可签名
func TestInjectedWithKey(t *testing.T) {
	server := newRPCServer(t, nil)
	ctx := context.Background()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey)

	w, err := NewInjected(ctx, server.URL, key)
	require.NoError(t, err)
	defer w.Close()

	accounts, err := w.Request(ctx, MethodRequestAccounts)
	require.NoError(t, err)
	assert.Equal(t, []string{address.Hex()}, accounts)

	opts, err := w.Transactor(ctx)
	require.NoError(t, err)
	assert.Equal(t, address, opts.From)
}

// TestInjectedUnreachableNode http 节点不可达时仍能创建能力，账户请求按拒绝处理
func TestInjectedUnreachableNode(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	ctx := context.Background()
	w, err := NewInjected(ctx, url, nil)
	require.NoError(t, err)
	defer w.Close()

	alerter := &recordingAlerter{}
	bridge := NewBridge(w, alerter, nil)
	account, err := bridge.CheckConnection(ctx)
	assert.ErrorIs(t, err, ErrWalletRequestRejected)
	assert.True(t, account.IsZero())
	assert.Empty(t, alerter.alerts)
}

// TestInjectedUnsupportedScheme 无法拨号的地址直接返回错误
func TestInjectedUnsupportedScheme(t *testing.T) {
	_, err := NewInjected(context.Background(), "ftp://127.0.0.1:8545", nil)
	assert.Error(t, err)
}
