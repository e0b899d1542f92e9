package service

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen 熔断器处于打开状态，调用被快速拒绝
var ErrCircuitOpen = errors.New("circuit breaker open")

// 熔断器状态
const (
	BreakerClosed   = "closed"
	BreakerOpen     = "open"
	BreakerHalfOpen = "half-open"
)

// CircuitBreaker 远程调用熔断器。
// 连续失败达到阈值后打开，冷却期过后放行一次探测调用，
// 探测成功恢复关闭，失败则重新打开并重置冷却计时。
// 状态仅存于进程内存，不做任何日志或持久化。
type CircuitBreaker struct {
	mu          sync.Mutex
	threshold   int
	callTimeout time.Duration
	cooldown    time.Duration

	state       string
	failures    int
	lastFailure time.Time

	now func() time.Time
}

// NewCircuitBreaker 创建熔断器
func NewCircuitBreaker(threshold int, callTimeout, cooldown time.Duration) *CircuitBreaker {
	if threshold <= 0 {
		threshold = 3
	}
	if callTimeout <= 0 {
		callTimeout = 30 * time.Second
	}
	if cooldown <= 0 {
		cooldown = 2 * time.Minute
	}
	return &CircuitBreaker{
		threshold:   threshold,
		callTimeout: callTimeout,
		cooldown:    cooldown,
		state:       BreakerClosed,
		now:         time.Now,
	}
}

// State 当前状态
func (b *CircuitBreaker) State() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Failures 当前连续失败次数
func (b *CircuitBreaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}

// Execute 在熔断保护与单次调用超时下执行 op
func (b *CircuitBreaker) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	if err := b.allow(); err != nil {
		return err
	}

	callCtx, cancel := context.WithTimeout(ctx, b.callTimeout)
	defer cancel()

	err := op(callCtx)
	b.record(err)
	return err
}

func (b *CircuitBreaker) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == BreakerOpen {
		if b.now().Sub(b.lastFailure) < b.cooldown {
			return ErrCircuitOpen
		}
		b.state = BreakerHalfOpen
	}
	return nil
}

func (b *CircuitBreaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		b.failures = 0
		b.state = BreakerClosed
		return
	}

	b.failures++
	b.lastFailure = b.now()
	if b.state == BreakerHalfOpen || b.failures >= b.threshold {
		b.state = BreakerOpen
	}
}
