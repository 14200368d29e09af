// Package check provides the assertion primitive used across memkit.
//
// Assertions are compiled in only when building with the memdebug tag:
//
//	go test -tags memdebug ./...
//
// Without the tag, That and Thatf are empty functions the compiler inlines away,
// so callers must not rely on them for control flow.
package check

import "fmt"

// Failure is the panic value raised by a failed assertion.
type Failure struct {
	Msg string
}

func (f *Failure) Error() string {
	return "check failed: " + f.Msg
}

func fail(format string, args ...any) {
	panic(&Failure{Msg: fmt.Sprintf(format, args...)})
}
