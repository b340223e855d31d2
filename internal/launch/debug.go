package launch

import (
	"os"
	"strings"
)

var debugFlags = []string{"--debug", "--debug-brk", "--inspect", "--inspect-brk"}

// IsDebugMode reports whether args carry a debugger flag such as --debug,
// --debug-brk=5859 or --inspect.
func IsDebugMode(args []string) bool {
	for _, arg := range args {
		name, _, _ := strings.Cut(arg, "=")
		for _, f := range debugFlags {
			if name == f {
				return true
			}
		}
	}
	return false
}

// ProcessDebugMode reports whether the current process was started with a
// debugger flag.
func ProcessDebugMode() bool {
	return IsDebugMode(os.Args[1:])
}
