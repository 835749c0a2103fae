// Package debug holds the assertion helper for invariants that indicate
// an internal bug rather than bad caller input. It is never used for
// input validation, which always returns an ierrors value instead.
package debug

import "fmt"

// Enabled controls whether Assert panics. It defaults to false so release
// builds never panic on an internal invariant; set it (e.g. from a test's
// TestMain) to catch regressions during development.
var Enabled = false

// Assert panics with a formatted message if cond is false and Enabled is
// true; otherwise it is a no-op.
func Assert(cond bool, format string, args ...interface{}) {
	if !cond && Enabled {
		panic(fmt.Sprintf("isomesh: internal invariant violated: "+format, args...))
	}
}
