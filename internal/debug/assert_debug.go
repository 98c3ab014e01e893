//go:build debug

package debug

import "fmt"

// Debug is true when the package is built with the debug tag.
const Debug = true

func init() {
	fmt.Println("WARNING -- DEBUG FLAG IS ON")
}

// Assert panics if condition is false.
// Compiled to a no-op unless the debug build tag is set.
func Assert(condition bool, message ...string) {
	if !condition {
		if len(message) > 0 {
			panic(message[0])
		}
		panic("assertion failed")
	}
}
