//go:build !debug

package debug

// Debug is true when the package is built with the debug tag.
const Debug = false

// Assert panics if condition is false.
// Compiled to a no-op unless the debug build tag is set.
func Assert(condition bool, message ...string) {}
