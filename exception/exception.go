package exception

import (
	"os"
	"runtime/debug"

	"github.com/mezonai/powchain/logx"
	"github.com/mezonai/powchain/monitoring"
)

// SafeGo runs fn in a goroutine and logs instead of crashing if it panics.
func SafeGo(name string, fn func()) {
	go func() {
		defer Recover(name, false)
		fn()
	}()
}

// Recover must be deferred directly. It logs a panic with its stack and exits the process
// when fatal is set.
func Recover(name string, fatal bool) {
	if r := recover(); r != nil {
		monitoring.IncreasePanicCount()
		logx.Error("PANIC", "Panic in: ", name, " ", r, "\n", string(debug.Stack()))
		if fatal {
			os.Exit(1)
		}
	}
}
