package exception

import (
	"runtime/debug"

	"github.com/cuiweiyuan/explorer/logx"
	"github.com/cuiweiyuan/explorer/monitoring"
)

// SafeGo runs fn on its own goroutine. A panic inside fn is logged and
// counted instead of taking the process down.
func SafeGo(name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				monitoring.IncreasePanicCount()
				logx.Error("PANIC", "panic in ", name, ": ", r, "\n", string(debug.Stack()))
			}
		}()
		fn()
	}()
}
