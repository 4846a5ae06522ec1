// Package testutil implements various utilities to reduce boilerplate in unit
// tests.
package testutil

import (
	"testing"

	"go.uber.org/goleak"
)

// VerifyTestMain runs the tests of a package and fails the run if any
// goroutine started by them is still running afterwards.
func VerifyTestMain(m *testing.M, opts ...goleak.Option) {
	goleak.VerifyTestMain(m, opts...)
}
