//go:build !memdebug

package check

// Enabled reports whether assertions are active in this build.
const Enabled = false

// That is a no-op without the memdebug build tag.
func That(bool, string) {}

// Thatf is a no-op without the memdebug build tag.
func Thatf(bool, string, ...any) {}
