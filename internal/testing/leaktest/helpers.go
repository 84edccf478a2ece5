// Package leaktest holds goroutine leak checks shared by integration tests.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// settle gives finished goroutines a chance to exit before counting.
func settle(d time.Duration) {
	runtime.Gosched()
	time.Sleep(d)
}

// GoroutineChecker compares the goroutine count against a baseline.
type GoroutineChecker struct {
	baseline int
	t        testing.TB
}

// NewGoroutineChecker records the current goroutine count.
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	settle(10 * time.Millisecond)
	return &GoroutineChecker{baseline: runtime.NumGoroutine(), t: t}
}

// Check fails the test when more than tolerance goroutines outlived the
// baseline. Pool background workers usually need a tolerance of one or two.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	// Retry briefly; connection teardown finishes asynchronously.
	var extra int
	for attempt := 0; attempt < 5; attempt++ {
		settle(20 * time.Millisecond)
		runtime.GC()
		if extra = runtime.NumGoroutine() - g.baseline; extra <= tolerance {
			return
		}
	}

	g.t.Errorf("goroutine leak: baseline=%d extra=%d tolerance=%d", g.baseline, extra, tolerance)
}

// Run fails t when fn leaves goroutines behind.
func Run(t testing.TB, fn func()) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}
