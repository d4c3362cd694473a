package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTransient = errors.New("transient")
var errFatal = errors.New("fatal")

func TestDo(t *testing.T) {
	tests := []struct {
		name      string
		attempts  int
		failures  int
		failWith  error
		wantCalls int
		wantErr   error
	}{
		{name: "first try", attempts: 3, failures: 0, wantCalls: 1},
		{name: "succeeds on last attempt", attempts: 3, failures: 2, failWith: errTransient, wantCalls: 3},
		{name: "budget exhausted", attempts: 3, failures: 5, failWith: errTransient, wantCalls: 3, wantErr: errTransient},
		{name: "non retryable stops", attempts: 3, failures: 5, failWith: errFatal, wantCalls: 1, wantErr: errFatal},
		{name: "zero attempts still calls once", attempts: 0, failures: 5, failWith: errTransient, wantCalls: 1, wantErr: errTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			retries := 0
			p := Policy{
				Attempts:  tt.attempts,
				Backoff:   time.Millisecond,
				Retryable: func(err error) bool { return !errors.Is(err, errFatal) },
				OnRetry:   func(int, error) { retries++ },
			}

			err := Do(context.Background(), p, func(context.Context) error {
				calls++
				if calls <= tt.failures {
					return tt.failWith
				}
				return nil
			})

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if retries != max(tt.wantCalls-1, 0) && !errors.Is(tt.wantErr, errFatal) {
				t.Errorf("OnRetry called %d times, want %d", retries, tt.wantCalls-1)
			}
		})
	}
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	start := time.Now()
	err := Do(ctx, Policy{Attempts: 5, Backoff: time.Hour}, func(context.Context) error {
		calls++
		cancel()
		return errTransient
	})

	if !errors.Is(err, errTransient) {
		t.Errorf("err = %v, want last fn error", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if time.Since(start) > time.Second {
		t.Error("Do should return promptly once ctx is cancelled")
	}
}
