package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

var errFail = errors.New("下游服务故障")

func newTestBreaker(timeout time.Duration) *CircuitBreaker {
	return NewCircuitBreaker("test", Config{
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     timeout,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
}

// TestCircuitBreaker_ClosedToOpen 连续失败达到阈值后熔断
func TestCircuitBreaker_ClosedToOpen(t *testing.T) {
	cb := newTestBreaker(time.Minute)

	for i := 0; i < 3; i++ {
		if err := cb.Execute(func() error { return errFail }); !errors.Is(err, errFail) {
			t.Fatalf("第%d次调用应返回业务错误, got %v", i+1, err)
		}
	}

	if cb.State() != StateOpen {
		t.Errorf("连续3次失败后应为OPEN, got %s", cb.State())
	}

	// OPEN状态下快速失败，不执行业务函数
	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrOpenState) {
		t.Errorf("OPEN状态应返回ErrOpenState, got %v", err)
	}
	if called {
		t.Error("OPEN状态不应执行业务函数")
	}
}

// TestCircuitBreaker_HalfOpenRecovery 超时后半开，探测成功则关闭
func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb := newTestBreaker(10 * time.Millisecond)

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errFail })
	}
	if cb.State() != StateOpen {
		t.Fatalf("应为OPEN, got %s", cb.State())
	}

	// 等待熔断超时
	time.Sleep(20 * time.Millisecond)

	if cb.State() != StateHalfOpen {
		t.Fatalf("超时后应为HALF_OPEN, got %s", cb.State())
	}

	// 连续成功达到MaxRequests后关闭
	for i := 0; i < 2; i++ {
		if err := cb.Execute(func() error { return nil }); err != nil {
			t.Fatalf("半开探测应放行, got %v", err)
		}
	}

	if cb.State() != StateClosed {
		t.Errorf("探测成功后应为CLOSED, got %s", cb.State())
	}
}

// TestCircuitBreaker_HalfOpenFailure 半开探测失败立即重新熔断
func TestCircuitBreaker_HalfOpenFailure(t *testing.T) {
	cb := newTestBreaker(10 * time.Millisecond)

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errFail })
	}
	time.Sleep(20 * time.Millisecond)

	if cb.State() != StateHalfOpen {
		t.Fatalf("应为HALF_OPEN, got %s", cb.State())
	}

	_ = cb.Execute(func() error { return errFail })

	if cb.State() != StateOpen {
		t.Errorf("探测失败后应重新OPEN, got %s", cb.State())
	}
}

// TestCircuitBreaker_StateChangeCallback 状态变化回调
func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	cb := newTestBreaker(time.Minute)

	var from, to State
	cb.SetStateChangeCallback(func(name string, f State, t State) {
		from, to = f, t
	})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errFail })
	}

	if from != StateClosed || to != StateOpen {
		t.Errorf("回调应收到CLOSED→OPEN, got %s→%s", from, to)
	}
}
