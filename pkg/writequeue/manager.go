// Package writequeue serializes the write operations of one user
// Package writequeue 串行化同一用户的写操作
// SQLite allows a single writer, concurrent writes of the same user would otherwise hit "database is locked"
package writequeue

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrWriteQueueFull 用户写队列已满
	ErrWriteQueueFull = errors.New("write queue is full")
	// ErrWriteQueueClosed 写队列管理器已关闭
	ErrWriteQueueClosed = errors.New("write queue is closed")
	// ErrWriteTimeout 写操作超时
	ErrWriteTimeout = errors.New("write operation timeout")
)

// Config 写队列配置
type Config struct {
	QueueCapacity int           // per-user queue capacity // 每用户队列容量
	WriteTimeout  time.Duration // max wait for one write // 单次写操作最长等待
	IdleTimeout   time.Duration // idle queues are stopped after this // 空闲队列回收时间
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		QueueCapacity: 100,
		WriteTimeout:  30 * time.Second,
		IdleTimeout:   10 * time.Minute,
	}
}

type writeOp struct {
	ctx    context.Context
	fn     func() error
	result chan error
}

type userQueue struct {
	ch       chan writeOp
	lastUsed time.Time
}

// Manager owns one FIFO queue and worker per user
// Manager 为每个用户维护一个 FIFO 队列和 worker
type Manager struct {
	config Config
	logger *zap.Logger

	mu     sync.Mutex
	queues map[int64]*userQueue
	closed bool

	wg     sync.WaitGroup
	stopCh chan struct{}
}

// New 创建写队列管理器，cfg 为 nil 时使用默认配置
func New(cfg *Config, logger *zap.Logger) *Manager {
	c := DefaultConfig()
	if cfg != nil {
		if cfg.QueueCapacity > 0 {
			c.QueueCapacity = cfg.QueueCapacity
		}
		if cfg.WriteTimeout > 0 {
			c.WriteTimeout = cfg.WriteTimeout
		}
		if cfg.IdleTimeout > 0 {
			c.IdleTimeout = cfg.IdleTimeout
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Manager{
		config: c,
		logger: logger,
		queues: make(map[int64]*userQueue),
		stopCh: make(chan struct{}),
	}

	m.wg.Add(1)
	go m.reapIdle()

	return m
}

// Execute runs fn on the worker of uid and waits for its result
// Execute 在 uid 对应的 worker 上执行 fn 并等待结果
func (m *Manager) Execute(ctx context.Context, uid int64, fn func() error) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrWriteQueueClosed
	}
	q, ok := m.queues[uid]
	if !ok {
		q = &userQueue{ch: make(chan writeOp, m.config.QueueCapacity)}
		m.queues[uid] = q
		m.wg.Add(1)
		go m.work(q)
	}
	q.lastUsed = time.Now()

	op := writeOp{ctx: ctx, fn: fn, result: make(chan error, 1)}
	select {
	case q.ch <- op:
	default:
		m.mu.Unlock()
		return ErrWriteQueueFull
	}
	m.mu.Unlock()

	timer := time.NewTimer(m.config.WriteTimeout)
	defer timer.Stop()

	select {
	case err := <-op.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrWriteTimeout
	}
}

func (m *Manager) work(q *userQueue) {
	defer m.wg.Done()
	for op := range q.ch {
		if err := op.ctx.Err(); err != nil {
			op.result <- err
			continue
		}
		op.result <- op.fn()
	}
}

func (m *Manager) reapIdle() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.config.IdleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopCh:
			return
		case now := <-ticker.C:
			m.mu.Lock()
			for uid, q := range m.queues {
				if len(q.ch) == 0 && now.Sub(q.lastUsed) > m.config.IdleTimeout {
					close(q.ch)
					delete(m.queues, uid)
					m.logger.Debug("write queue idle, stopped", zap.Int64("uid", uid))
				}
			}
			m.mu.Unlock()
		}
	}
}

// QueueCount 当前活跃队列数量
func (m *Manager) QueueCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queues)
}

// Shutdown stops accepting writes, drains pending ones and waits for the workers
// Shutdown 停止接收写操作，排空队列并等待 worker 退出
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	close(m.stopCh)
	for uid, q := range m.queues {
		close(q.ch)
		delete(m.queues, uid)
	}
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("write queue manager shutdown completed")
		return nil
	case <-ctx.Done():
		m.logger.Warn("write queue manager shutdown timeout")
		return ctx.Err()
	}
}
