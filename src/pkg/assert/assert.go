package assert

import "fmt"

// Assert panics when cond is false. It guards internal invariants only;
// recoverable conditions are reported as errors, not asserted.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}

func NoError(err error) {
	if err != nil {
		panic(err)
	}
}
