// Package diag wraps println/fmt.Sprintf the way WingFC's own call
// sites do, so diagnostic output reads the same everywhere without
// pulling a structured logging library into a TinyGo binary.
package diag

import "fmt"

// Printf formats and prints a diagnostic line via println, the
// cheapest path to a UART or semihosting console on an embedded target.
func Printf(format string, args ...any) {
	println(fmt.Sprintf(format, args...))
}
