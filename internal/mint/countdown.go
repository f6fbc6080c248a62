package mint

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Remaining formats target-now as "1d 2h 3m 4s", dropping leading zero units.
// It returns "" once now ≥ target or when target is the zero time.
func Remaining(target, now time.Time) string {
	if target.IsZero() {
		return ""
	}
	d := target.Sub(now)
	if d <= 0 {
		return ""
	}
	// Round up so the last visible value is "1s", never "0s".
	secs := int64((d + time.Second - 1) / time.Second)

	days := secs / 86400
	hours := secs % 86400 / 3600
	mins := secs % 3600 / 60
	secs %= 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if days > 0 || hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if days > 0 || hours > 0 || mins > 0 {
		parts = append(parts, fmt.Sprintf("%dm", mins))
	}
	parts = append(parts, fmt.Sprintf("%ds", secs))
	return strings.Join(parts, " ")
}

// Countdown produces a live Remaining string.
type Countdown struct {
	Interval time.Duration
	Now      func() time.Time
}

// NewCountdown ticks once per second against the wall clock.
func NewCountdown() *Countdown {
	return &Countdown{Interval: time.Second, Now: time.Now}
}

// Start emits the remaining text immediately and then on every tick. When the
// target is reached it emits a final "" and closes the channel. Cancelling
// ctx closes the channel too. The ticker is released in both cases. A zero
// target yields an already-closed channel.
func (c *Countdown) Start(ctx context.Context, target time.Time) <-chan string {
	out := make(chan string, 1)
	if target.IsZero() {
		close(out)
		return out
	}

	go func() {
		defer close(out)
		ticker := time.NewTicker(c.Interval)
		defer ticker.Stop()

		for {
			text := Remaining(target, c.Now())
			select {
			case out <- text:
			case <-ctx.Done():
				return
			}
			if text == "" {
				return
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
