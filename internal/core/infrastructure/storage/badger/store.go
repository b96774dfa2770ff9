// Package badger 提供基于BadgerDB的铸造记录存储
//
// 只记录已确认的铸造结果（nftmint history），不缓存元数据。
package badger

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	badgerdb "github.com/dgraph-io/badger/v3"

	logimpl "github.com/weisyn/nftmint/internal/core/infrastructure/log"
	log "github.com/weisyn/nftmint/pkg/interfaces/infrastructure/log"
)

// Options 存储选项
type Options struct {
	Path       string // 数据目录
	InMemory   bool   // 内存模式（测试使用），忽略 Path
	SyncWrites bool   // 每次写入同步落盘
}

// Store 基于BadgerDB的存储
type Store struct {
	db     *badgerdb.DB
	logger log.Logger

	// 避免 Close 过程中仍被写入
	closing int32
	writeWg sync.WaitGroup
}

// Open 打开（或创建）存储
func Open(options Options, logger log.Logger) (*Store, error) {
	if logger == nil {
		logger = logimpl.NewNop()
	}

	var opts badgerdb.Options
	if options.InMemory {
		opts = badgerdb.DefaultOptions("").WithInMemory(true)
	} else {
		if options.Path == "" {
			return nil, fmt.Errorf("badger: 数据目录未配置")
		}
		if err := os.MkdirAll(options.Path, 0700); err != nil {
			return nil, fmt.Errorf("无法创建BadgerDB数据目录: %w", err)
		}
		opts = badgerdb.DefaultOptions(options.Path)
		opts.SyncWrites = options.SyncWrites
	}

	// 铸造记录数据量很小，压低缓存和 value log 的内存占用
	opts.ValueLogFileSize = 16 << 20
	opts.MemTableSize = 8 << 20
	opts.BlockCacheSize = 8 << 20
	opts.IndexCacheSize = 4 << 20
	opts.NumMemtables = 2
	opts.NumCompactors = 2
	opts.Logger = newBadgerLogger(logger)

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("打开BadgerDB失败: %w", err)
	}

	logger.Infof("BadgerDB存储已打开: path=%s inMemory=%v", options.Path, options.InMemory)
	return &Store{db: db, logger: logger}, nil
}

// Close 关闭存储并释放资源
func (s *Store) Close() error {
	// 进入关闭态：阻断后续写入，并等待 in-flight 写完成
	if !atomic.CompareAndSwapInt32(&s.closing, 0, 1) {
		return nil
	}
	s.writeWg.Wait()

	if err := s.db.Close(); err != nil {
		s.logger.Errorf("关闭BadgerDB失败: %v", err)
		return fmt.Errorf("关闭BadgerDB失败: %w", err)
	}
	s.logger.Info("BadgerDB存储已关闭")
	return nil
}

func (s *Store) beginWrite() (func(), error) {
	// 关闭过程中拒绝写入
	if atomic.LoadInt32(&s.closing) == 1 {
		return nil, fmt.Errorf("badger store is closing")
	}
	s.writeWg.Add(1)
	// double-check，避免在 Add 之后进入 closing
	if atomic.LoadInt32(&s.closing) == 1 {
		s.writeWg.Done()
		return nil, fmt.Errorf("badger store is closing")
	}
	return s.writeWg.Done, nil
}

// badgerLogger 实现BadgerDB的日志接口
type badgerLogger struct {
	logger log.Logger
}

func newBadgerLogger(logger log.Logger) *badgerLogger {
	return &badgerLogger{logger: logger}
}

// Errorf 输出错误日志
func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Errorf("[BadgerDB] "+format, args...)
}

// Warningf 输出警告日志
func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warnf("[BadgerDB] "+format, args...)
}

// Infof BadgerDB 的 info 日志过于频繁，降为 debug
func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debugf("[BadgerDB] "+format, args...)
}

// Debugf 输出调试日志
func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debugf("[BadgerDB] "+format, args...)
}
