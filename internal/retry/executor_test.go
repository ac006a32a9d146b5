package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

// stubClassifier marks every error transient or fatal.
type stubClassifier struct{ transient bool }

func (s stubClassifier) IsTransient(err error) bool { return s.transient }

func fastBackoff(maxAttempts int) *ExponentialBackoff {
	return NewExponentialBackoff(maxAttempts,
		WithInitialDelay(time.Millisecond),
		WithMaxDelay(2*time.Millisecond),
		WithJitter(0),
	)
}

func TestExecute_SuccessFirstTry(t *testing.T) {
	e := NewExecutor(stubClassifier{transient: true}, fastBackoff(3))

	calls := 0
	err := e.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestExecute_RetriesTransientThenSucceeds(t *testing.T) {
	e := NewExecutor(stubClassifier{transient: true}, fastBackoff(5))

	calls := 0
	err := e.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestExecute_FatalErrorNotRetried(t *testing.T) {
	e := NewExecutor(stubClassifier{transient: false}, fastBackoff(5))

	calls := 0
	fatal := errors.New("fatal")
	err := e.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return fatal
	})

	if !errors.Is(err, fatal) {
		t.Fatalf("expected fatal error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("fatal errors must not be retried, got %d calls", calls)
	}
}

func TestExecute_ExhaustsAttempts(t *testing.T) {
	e := NewExecutor(stubClassifier{transient: true}, fastBackoff(3))

	calls := 0
	transient := errors.New("still down")
	err := e.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return transient
	})

	if !errors.Is(err, transient) {
		t.Fatalf("expected last transient error, got %v", err)
	}
	// Initial attempt plus three retries.
	if calls != 4 {
		t.Errorf("expected 4 calls, got %d", calls)
	}
}

func TestExecute_ZeroAttemptsMeansNoRetries(t *testing.T) {
	e := NewExecutor(stubClassifier{transient: true}, fastBackoff(0))

	calls := 0
	err := e.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return errors.New("transient")
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected single attempt, got %d", calls)
	}
}

func TestExecute_ContextCancellationStopsRetries(t *testing.T) {
	e := NewExecutor(stubClassifier{transient: true},
		NewExponentialBackoff(10, WithInitialDelay(time.Hour), WithJitter(0)))

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- e.Execute(ctx, func(ctx context.Context) error {
			return errors.New("transient")
		})
	}()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Execute did not return after cancellation")
	}
}

func TestWithOnRetry_CallbackObservesAttempts(t *testing.T) {
	base := NewExecutor(stubClassifier{transient: true}, fastBackoff(2))

	var attempts []int
	e := base.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		attempts = append(attempts, attempt)
	})

	_ = e.Execute(context.Background(), func(ctx context.Context) error {
		return errors.New("transient")
	})

	if len(attempts) != 2 || attempts[0] != 0 || attempts[1] != 1 {
		t.Errorf("expected callbacks for attempts [0 1], got %v", attempts)
	}

	// The original executor must be unaffected.
	if base.onRetry != nil {
		t.Error("WithOnRetry must not mutate the receiver")
	}
}
