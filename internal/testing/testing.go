// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// ManualTicker is a ticker that only fires when told to. It satisfies transport.Ticker.
type ManualTicker struct {
	ch       chan time.Time
	stopped  atomic.Bool
	Interval time.Duration
}

func (t *ManualTicker) C() <-chan time.Time { return t.ch }
func (t *ManualTicker) Stop()               { t.stopped.Store(true) }

// Stopped reports whether Stop has been called.
func (t *ManualTicker) Stopped() bool { return t.stopped.Load() }

// Fire delivers one tick and reports whether a reader took it within timeout.
func (t *ManualTicker) Fire(timeout time.Duration) bool {
	select {
	case t.ch <- time.Now():
		return true
	case <-time.After(timeout):
		return false
	}
}

// TickerFactory records every [ManualTicker] it hands out.
type TickerFactory struct {
	mu      sync.Mutex
	tickers []*ManualTicker
}

// New creates and records a [ManualTicker].
func (f *TickerFactory) New(d time.Duration) *ManualTicker {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &ManualTicker{ch: make(chan time.Time), Interval: d}
	f.tickers = append(f.tickers, t)
	return t
}

// Count returns how many tickers were created.
func (f *TickerFactory) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tickers)
}

// Last returns the most recently created ticker, or nil.
func (f *TickerFactory) Last() *ManualTicker {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.tickers) == 0 {
		return nil
	}
	return f.tickers[len(f.tickers)-1]
}

// All returns every ticker created so far.
func (f *TickerFactory) All() []*ManualTicker {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*ManualTicker(nil), f.tickers...)
}

// Eventually polls cond until it holds or timeout elapses.
func Eventually(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("condition not met within %s: %s", timeout, msg)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
