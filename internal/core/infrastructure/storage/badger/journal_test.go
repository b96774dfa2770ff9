package badger

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/nftmint/pkg/types"
)

// 初始化测试环境
func setupTestJournal(t *testing.T) *Journal {
	store, err := Open(Options{InMemory: true}, nil)
	require.NoError(t, err)

	journal, err := NewJournal(store)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = journal.Close()
		_ = store.Close()
	})
	return journal
}

func receipt(hash string) types.MintReceipt {
	return types.MintReceipt{
		TxHash:      hash,
		Beneficiary: "0xD837c7c67BD3A63E9D6ece6752F130A55d64BDB5",
		ValueWei:    big.NewInt(8_000_000_000_000_000),
		BlockNumber: 42,
		MintedAt:    time.Date(2022, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

// TestJournalAppendList 记录按追加顺序返回
func TestJournalAppendList(t *testing.T) {
	journal := setupTestJournal(t)
	ctx := context.Background()

	empty, err := journal.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, hash := range []string{"0x01", "0x02", "0x03"} {
		require.NoError(t, journal.Append(ctx, receipt(hash)))
	}

	all, err := journal.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "0x01", all[0].TxHash)
	assert.Equal(t, "0x03", all[2].TxHash)
	assert.Equal(t, 0, all[0].ValueWei.Cmp(big.NewInt(8_000_000_000_000_000)))
	assert.True(t, all[0].MintedAt.Equal(receipt("").MintedAt))

	last, err := journal.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, last, 2)
	assert.Equal(t, "0x02", last[0].TxHash)
}

// TestJournalOnDisk 重新打开后记录仍在
func TestJournalOnDisk(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := Open(Options{Path: dir, SyncWrites: true}, nil)
	require.NoError(t, err)
	journal, err := NewJournal(store)
	require.NoError(t, err)
	require.NoError(t, journal.Append(ctx, receipt("0xaa")))
	require.NoError(t, journal.Close())
	require.NoError(t, store.Close())

	store, err = Open(Options{Path: dir}, nil)
	require.NoError(t, err)
	defer store.Close()
	journal, err = NewJournal(store)
	require.NoError(t, err)
	defer journal.Close()

	require.NoError(t, journal.Append(ctx, receipt("0xbb")))
	all, err := journal.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "0xaa", all[0].TxHash)
	assert.Equal(t, "0xbb", all[1].TxHash)
}

// TestStoreClosedRejectsWrites 关闭后拒绝写入
func TestStoreClosedRejectsWrites(t *testing.T) {
	store, err := Open(Options{InMemory: true}, nil)
	require.NoError(t, err)
	journal, err := NewJournal(store)
	require.NoError(t, err)
	require.NoError(t, journal.Close())
	require.NoError(t, store.Close())

	err = journal.Append(context.Background(), receipt("0x01"))
	assert.Error(t, err)

	// 重复关闭是空操作
	assert.NoError(t, store.Close())
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(Options{}, nil)
	assert.Error(t, err)
}
