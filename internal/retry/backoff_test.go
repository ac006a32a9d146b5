package retry

import (
	"testing"
	"time"
)

// fixedJitter returns a jitter function that always yields v.
func fixedJitter(v float64) func() float64 {
	return func() float64 { return v }
}

func TestNextDelay_GrowsExponentially(t *testing.T) {
	b := NewExponentialBackoff(5,
		WithInitialDelay(100*time.Millisecond),
		WithMaxDelay(time.Minute),
		WithJitter(0), // deterministic
	)

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: 0, want: 100 * time.Millisecond},
		{attempt: 1, want: 200 * time.Millisecond},
		{attempt: 2, want: 400 * time.Millisecond},
		{attempt: 3, want: 800 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := b.NextDelay(tt.attempt); got != tt.want {
			t.Errorf("NextDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestNextDelay_CappedAtMaxDelay(t *testing.T) {
	b := NewExponentialBackoff(10,
		WithInitialDelay(100*time.Millisecond),
		WithMaxDelay(time.Second),
		WithJitter(0),
	)

	for attempt := 4; attempt < 10; attempt++ {
		if got := b.NextDelay(attempt); got != time.Second {
			t.Errorf("NextDelay(%d) = %v, want cap %v", attempt, got, time.Second)
		}
	}
}

func TestNextDelay_JitterBand(t *testing.T) {
	base := 100 * time.Millisecond

	// jitterFunc 0.0 maps to -1, 0.5 to 0, ~1.0 to ~+1.
	tests := []struct {
		name   string
		jitter float64
		random float64
		want   time.Duration
	}{
		{name: "midpoint means no jitter", jitter: 0.1, random: 0.5, want: 100 * time.Millisecond},
		{name: "low end shrinks delay", jitter: 0.1, random: 0.0, want: 90 * time.Millisecond},
		{name: "high end grows delay", jitter: 0.5, random: 1.0, want: 150 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewExponentialBackoff(3,
				WithInitialDelay(base),
				WithJitter(tt.jitter),
				WithJitterFunc(fixedJitter(tt.random)),
			)
			if got := b.NextDelay(0); got != tt.want {
				t.Errorf("NextDelay(0) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextDelay_CustomMultiplier(t *testing.T) {
	b := NewExponentialBackoff(3,
		WithInitialDelay(100*time.Millisecond),
		WithMultiplier(3.0),
		WithJitter(0),
	)

	if got := b.NextDelay(2); got != 900*time.Millisecond {
		t.Errorf("NextDelay(2) = %v, want 900ms", got)
	}
}

func TestMaxAttempts(t *testing.T) {
	if got := NewExponentialBackoff(7).MaxAttempts(); got != 7 {
		t.Errorf("MaxAttempts() = %d, want 7", got)
	}
	if got := NewExponentialBackoff(-1).MaxAttempts(); got != -1 {
		t.Errorf("MaxAttempts() = %d, want -1 (unlimited)", got)
	}
}
