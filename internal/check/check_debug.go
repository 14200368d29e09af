//go:build memdebug

package check

// Enabled reports whether assertions are active in this build.
const Enabled = true

// That panics with msg when cond is false.
func That(cond bool, msg string) {
	if !cond {
		fail("%s", msg)
	}
}

// Thatf panics with a formatted message when cond is false.
func Thatf(cond bool, format string, args ...any) {
	if !cond {
		fail(format, args...)
	}
}
