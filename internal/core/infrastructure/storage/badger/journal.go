package badger

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	badgerdb "github.com/dgraph-io/badger/v3"

	"github.com/weisyn/nftmint/pkg/types"
)

var (
	mintPrefix  = []byte("mint/")
	sequenceKey = []byte("seq/mint")
)

// Journal 铸造记录，按确认顺序追加
type Journal struct {
	store *Store
	seq   *badgerdb.Sequence
}

// NewJournal 在存储上创建铸造记录
func NewJournal(store *Store) (*Journal, error) {
	seq, err := store.db.GetSequence(sequenceKey, 16)
	if err != nil {
		return nil, fmt.Errorf("获取铸造序号失败: %w", err)
	}
	return &Journal{store: store, seq: seq}, nil
}

func mintKey(n uint64) []byte {
	key := make([]byte, len(mintPrefix)+8)
	copy(key, mintPrefix)
	binary.BigEndian.PutUint64(key[len(mintPrefix):], n)
	return key
}

// Append 追加一条铸造记录
func (j *Journal) Append(ctx context.Context, receipt types.MintReceipt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done, err := j.store.beginWrite()
	if err != nil {
		return err
	}
	defer done()

	n, err := j.seq.Next()
	if err != nil {
		return fmt.Errorf("分配铸造序号失败: %w", err)
	}
	value, err := json.Marshal(receipt)
	if err != nil {
		return fmt.Errorf("序列化铸造记录失败: %w", err)
	}
	return j.store.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set(mintKey(n), value)
	})
}

// List 按追加顺序返回最近的 limit 条记录，limit <= 0 表示全部
func (j *Journal) List(ctx context.Context, limit int) ([]types.MintReceipt, error) {
	var receipts []types.MintReceipt
	err := j.store.db.View(func(txn *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		opts.Prefix = mintPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var receipt types.MintReceipt
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &receipt)
			}); err != nil {
				return fmt.Errorf("解析铸造记录失败: %w", err)
			}
			receipts = append(receipts, receipt)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(receipts) > limit {
		receipts = receipts[len(receipts)-limit:]
	}
	return receipts, nil
}

// Close 归还未使用的序号
func (j *Journal) Close() error {
	return j.seq.Release()
}
