// Package safe_close 提供优雅关闭协调器
package safe_close

import (
	"sync"
)

// SafeClose 关闭协调器
// 各个子服务通过 Attach 注册运行/关闭逻辑，任意一处 SendCloseSignal 后
// 所有注册的子服务都会收到关闭信号，WaitClosed 等待全部退出
type SafeClose struct {
	mu          sync.Mutex
	wg          sync.WaitGroup
	closeSignal chan struct{}
	closed      bool
	err         error
}

// NewSafeClose 创建 SafeClose 实例
func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach 注册一个子服务
// f 在独立 goroutine 中运行，完成时必须调用 done；closeSignal 关闭时应尽快退出
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	go f(s.wg.Done, s.closeSignal)
}

// SendCloseSignal 发送关闭信号
// err 为触发关闭的原因，nil 表示正常关闭；只有第一次调用的 err 会被保留
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	close(s.closeSignal)
}

// CloseSignal 获取关闭信号通道
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.closeSignal
}

// WaitClosed 阻塞等待所有子服务退出，返回触发关闭的错误
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
