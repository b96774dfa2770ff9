package wallet

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/weisyn/nftmint/internal/config"
	"github.com/weisyn/nftmint/internal/core/chain"
)

func localConfig(t *testing.T, env map[string]string) *config.Config {
	t.Helper()
	env[config.EnvNetwork] = "localhost"
	cfg, err := config.Load(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
	require.NoError(t, err)
	return cfg
}

func TestModuleProvidesCapability(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	cfg := localConfig(t, map[string]string{
		config.EnvAccountPrivateKey: hex.EncodeToString(crypto.FromECDSA(key)),
	})

	var (
		capability Capability
		bridge     *Bridge
	)
	app := fxtest.New(t,
		fx.Supply(cfg),
		Module(),
		fx.Populate(&capability, &bridge),
	)
	app.RequireStart()
	defer app.RequireStop()

	require.NotNil(t, capability)
	assert.Equal(t, capability, bridge.Capability())

	// 配置了私钥时账户查询不访问节点
	accounts, err := capability.Request(context.Background(), MethodAccounts)
	require.NoError(t, err)
	assert.Equal(t, []string{crypto.PubkeyToAddress(key.PublicKey).Hex()}, accounts)
}

func TestModuleDisabledWallet(t *testing.T) {
	cfg := localConfig(t, map[string]string{})

	var bridge *Bridge
	app := fxtest.New(t,
		fx.Supply(cfg, &Options{Disabled: true}),
		Module(),
		fx.Populate(&bridge),
	)
	app.RequireStart()
	defer app.RequireStop()

	assert.Nil(t, bridge.Capability())
	_, err := bridge.CheckConnection(context.Background())
	assert.ErrorIs(t, err, ErrWalletNotInstalled)
}

func TestModuleRejectsBadKey(t *testing.T) {
	cfg := localConfig(t, map[string]string{
		config.EnvAccountPrivateKey: "not-a-key",
	})

	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg),
		Module(),
		fx.Invoke(func(*Bridge) {}),
	)
	err := app.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), chain.ErrInvalidPrivateKey.Error())
}
