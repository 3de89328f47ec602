// Package delay provides the artificial pause inserted between a
// strategy's availability check and its write. The pause widens the
// race window far beyond normal request latency so that incorrect
// locking becomes observable: without it, two racing requests would
// rarely both see the seat as free.
package delay

import "time"

// DefaultWait is how long an attempt sleeps when the request does not
// override it.
const DefaultWait = 30 * time.Second

// Injector blocks callers for a fixed duration. A nil injector or a
// non-positive duration means no pause.
type Injector struct {
	d time.Duration
}

// New returns an Injector that pauses for d.
func New(d time.Duration) *Injector { return &Injector{d: d} }

// Seconds returns an Injector that pauses for n seconds.
func Seconds(n int) *Injector { return New(time.Duration(n) * time.Second) }

// Wait blocks the calling goroutine for the configured duration. The
// wait is deliberately not tied to a context: once an attempt starts
// sleeping it always completes its pause, so a client disconnect
// cannot shrink the race window.
func (i *Injector) Wait() {
	if i == nil || i.d <= 0 {
		return
	}
	time.Sleep(i.d)
}

// Duration reports the configured pause.
func (i *Injector) Duration() time.Duration {
	if i == nil {
		return 0
	}
	return i.d
}
