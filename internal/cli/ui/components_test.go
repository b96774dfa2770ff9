package ui

import (
	"bytes"
	"math/big"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/nftmint/pkg/types"
)

func newTestComponents(t *testing.T) (Components, *bytes.Buffer) {
	t.Helper()
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	var buf bytes.Buffer
	return NewComponents(Options{Out: &buf}), &buf
}

func TestShowGallery(t *testing.T) {
	c, buf := newTestComponents(t)

	require.NoError(t, c.ShowGallery([]types.TokenMetadata{
		{Image: "https://img/1.png", Name: "first"},
		{Image: "https://img/2.png", Name: "second"},
	}))
	out := buf.String()
	assert.Contains(t, out, "画廊 (2)")
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "https://img/2.png")
}

func TestShowGalleryEmpty(t *testing.T) {
	c, buf := newTestComponents(t)

	require.NoError(t, c.ShowGallery(nil))
	assert.Contains(t, buf.String(), "画廊为空")
}

func TestShowReceipt(t *testing.T) {
	c, buf := newTestComponents(t)

	require.NoError(t, c.ShowReceipt(&types.MintReceipt{
		TxHash:      "0xfeed",
		Beneficiary: "0xD837c7c67BD3A63E9D6ece6752F130A55d64BDB5",
		ValueWei:    big.NewInt(8_000_000_000_000_000),
		BlockNumber: 42,
		ExplorerURL: "https://rinkeby.etherscan.io/tx/0xfeed",
		MintedAt:    time.Now(),
	}))
	out := buf.String()
	assert.Contains(t, out, "0xfeed")
	assert.Contains(t, out, "0.008 ETH")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "https://rinkeby.etherscan.io/tx/0xfeed")
}

func TestShowReceiptWithoutExplorer(t *testing.T) {
	c, buf := newTestComponents(t)

	require.NoError(t, c.ShowReceipt(&types.MintReceipt{TxHash: "0xfeed"}))
	assert.NotContains(t, buf.String(), "浏览器")
	assert.Contains(t, buf.String(), "0 ETH")
}

func TestShowNotification(t *testing.T) {
	c, buf := newTestComponents(t)

	require.NoError(t, c.ShowNotification(types.Notification{
		Level:   types.NotificationAlert,
		Message: "Please install a wallet!",
	}))
	assert.Contains(t, buf.String(), "ALERT")
	assert.Contains(t, buf.String(), "Please install a wallet!")

	buf.Reset()
	require.NoError(t, c.ShowNotification(types.Notification{
		Level:   types.NotificationSuccess,
		Message: "Success, see transaction: 0xfeed",
	}))
	assert.Contains(t, buf.String(), "Success, see transaction: 0xfeed")
}

func TestNonInteractive(t *testing.T) {
	c, buf := newTestComponents(t)

	ok, err := c.ShowConfirmDialog("withdraw", "confirm?")
	require.NoError(t, err)
	assert.True(t, ok)

	s := c.ShowSpinner("loading gallery")
	require.NoError(t, s.Start())
	require.NoError(t, s.Fail("boom"))
	assert.Contains(t, buf.String(), "loading gallery")
	assert.Contains(t, buf.String(), "boom")
}

func TestShowTableEmpty(t *testing.T) {
	c, _ := newTestComponents(t)
	assert.Error(t, c.ShowTable("x", nil))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "abc", truncateString("abc", 5))
	assert.Equal(t, "ab...", truncateString("abcdefgh", 5))
}
