// Package safe_close coordinates graceful shutdown of long running goroutines
// Package safe_close 协调常驻 goroutine 的优雅关闭
package safe_close

import (
	"sync"
)

// SafeClose 关闭协调器
// Attached handlers receive a close signal and report back through done
type SafeClose struct {
	closeOnce   sync.Once
	closeSignal chan struct{}
	wg          sync.WaitGroup

	mu  sync.Mutex
	err error
}

// NewSafeClose 创建关闭协调器
func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach runs fn in its own goroutine. fn must call done when it returns
// Attach 在独立 goroutine 中执行 fn，fn 结束时必须调用 done
func (s *SafeClose) Attach(fn func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	var doneOnce sync.Once
	go fn(func() { doneOnce.Do(s.wg.Done) }, s.closeSignal)
}

// SendCloseSignal broadcasts the close signal, only the first err is kept
// SendCloseSignal 广播关闭信号，只记录第一个错误
func (s *SafeClose) SendCloseSignal(err error) {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		close(s.closeSignal)
	})
}

// Closed 是否已发送关闭信号
func (s *SafeClose) Closed() bool {
	select {
	case <-s.closeSignal:
		return true
	default:
		return false
	}
}

// WaitClosed blocks until every attached handler called done
// WaitClosed 等待所有处理器完成
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
