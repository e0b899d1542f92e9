package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errRemoteDown = errors.New("remote down")

func failingOp(ctx context.Context) error { return errRemoteDown }

func TestCircuitBreakerOpensAfterThreshold(t *testing.T) {
	breaker := NewCircuitBreaker(3, time.Second, time.Minute)

	for i := 0; i < 3; i++ {
		if err := breaker.Execute(context.Background(), failingOp); !errors.Is(err, errRemoteDown) {
			t.Fatalf("call %d want remote error got %v", i, err)
		}
	}
	if state := breaker.State(); state != BreakerOpen {
		t.Fatalf("state after threshold failures want open got %s", state)
	}

	// 打开状态下不再调用被包裹的操作
	invoked := false
	err := breaker.Execute(context.Background(), func(ctx context.Context) error {
		invoked = true
		return nil
	})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("open breaker want ErrCircuitOpen got %v", err)
	}
	if invoked {
		t.Fatal("open breaker must not invoke operation")
	}
}

func TestCircuitBreakerHalfOpenRecovery(t *testing.T) {
	breaker := NewCircuitBreaker(2, time.Second, time.Minute)
	current := time.Now()
	breaker.now = func() time.Time { return current }

	for i := 0; i < 2; i++ {
		_ = breaker.Execute(context.Background(), failingOp)
	}
	if state := breaker.State(); state != BreakerOpen {
		t.Fatalf("state want open got %s", state)
	}

	// 冷却期内仍然快速失败
	if err := breaker.Execute(context.Background(), failingOp); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("within cooldown want ErrCircuitOpen got %v", err)
	}

	// 冷却期过后放行探测，成功则闭合并清零计数
	current = current.Add(2 * time.Minute)
	err := breaker.Execute(context.Background(), func(ctx context.Context) error { return nil })
	if err != nil {
		t.Fatalf("probe call failed: %v", err)
	}
	if state := breaker.State(); state != BreakerClosed {
		t.Fatalf("state after probe success want closed got %s", state)
	}
	if failures := breaker.Failures(); failures != 0 {
		t.Fatalf("failures after recovery want 0 got %d", failures)
	}
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	breaker := NewCircuitBreaker(1, time.Second, time.Minute)
	current := time.Now()
	breaker.now = func() time.Time { return current }

	_ = breaker.Execute(context.Background(), failingOp)
	if state := breaker.State(); state != BreakerOpen {
		t.Fatalf("state want open got %s", state)
	}

	current = current.Add(2 * time.Minute)
	if err := breaker.Execute(context.Background(), failingOp); !errors.Is(err, errRemoteDown) {
		t.Fatalf("probe want remote error got %v", err)
	}
	if state := breaker.State(); state != BreakerOpen {
		t.Fatalf("state after probe failure want open got %s", state)
	}

	// 冷却计时被重置
	current = current.Add(30 * time.Second)
	if err := breaker.Execute(context.Background(), failingOp); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("after reset cooldown want ErrCircuitOpen got %v", err)
	}
}

func TestCircuitBreakerEnforcesCallTimeout(t *testing.T) {
	breaker := NewCircuitBreaker(3, 20*time.Millisecond, time.Minute)

	err := breaker.Execute(context.Background(), func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want deadline exceeded got %v", err)
	}
	if failures := breaker.Failures(); failures != 1 {
		t.Fatalf("timeout should count as failure, got %d", failures)
	}
}
