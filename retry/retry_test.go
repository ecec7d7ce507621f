package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guidepost/guidepost/retry"
)

var errNope = errors.New("permanent failure")

func fastPolicy(attempts int) retry.Policy {
	return retry.Policy{MaxAttempts: attempts, BaseDelay: time.Millisecond}
}

func TestDo_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := fastPolicy(3).Do(context.Background(), func(context.Context) error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Errorf("Do = (%v, %d calls), want (nil, 1)", err, calls)
	}
}

func TestDo_RetriesTransientThenSucceeds(t *testing.T) {
	calls := 0
	err := fastPolicy(3).Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("flaky")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do = %v, want nil", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDo_ExhaustsBudget(t *testing.T) {
	calls := 0
	wantErr := errors.New("still down")
	err := fastPolicy(4).Do(context.Background(), func(context.Context) error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("Do = %v, want %v", err, wantErr)
	}
	if calls != 4 {
		t.Errorf("calls = %d, want 4", calls)
	}
}

func TestDo_NonRetryableReturnsImmediately(t *testing.T) {
	p := fastPolicy(5)
	p.IsRetryable = func(err error) bool { return !errors.Is(err, errNope) }

	calls := 0
	err := p.Do(context.Background(), func(context.Context) error {
		calls++
		return errNope
	})
	if !errors.Is(err, errNope) {
		t.Fatalf("Do = %v, want %v", err, errNope)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry)", calls)
	}
}

func TestDo_ContextCancelAbortsWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	p := retry.Policy{MaxAttempts: 5, BaseDelay: time.Hour}
	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- p.Do(ctx, func(context.Context) error {
			calls++
			return errors.New("flaky")
		})
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Do = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Do did not return after cancellation")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDelay_DoublesAndCaps(t *testing.T) {
	p := retry.Policy{BaseDelay: time.Second, MaxDelay: 5 * time.Second}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 5 * time.Second}, // capped
		{8, 5 * time.Second},
	}
	for _, tt := range tests {
		if got := p.Delay(tt.attempt); got != tt.want {
			t.Errorf("Delay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestDelay_JitterStaysInRange(t *testing.T) {
	p := retry.Policy{BaseDelay: time.Second, Jitter: true}
	for range 100 {
		d := p.Delay(2)
		if d < 0 || d > 2*time.Second {
			t.Fatalf("jittered Delay(2) = %v, want within [0, 2s]", d)
		}
	}
}

func TestDoValue(t *testing.T) {
	calls := 0
	got, err := retry.DoValue(context.Background(), fastPolicy(3), func(context.Context) (int, error) {
		calls++
		if calls < 2 {
			return 0, errors.New("flaky")
		}
		return 42, nil
	})
	if err != nil || got != 42 {
		t.Errorf("DoValue = (%d, %v), want (42, nil)", got, err)
	}
}
