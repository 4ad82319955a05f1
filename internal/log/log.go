// Package log provides category-based structured logging for voxlink.
//
// All packages log through the package-level functions so that the host
// (normally the cmd package) decides once where output goes. Until
// SetLogger is called every call is a no-op.
package log

import (
	"fmt"
	"runtime/debug"
	"sync/atomic"

	"go.uber.org/zap"
)

// Category groups log lines by subsystem. It is attached to every entry
// as the "cat" field.
type Category string

const (
	CatOrch      Category = "orch"
	CatNode      Category = "node"
	CatPlayer    Category = "player"
	CatGateway   Category = "gateway"
	CatConfig    Category = "config"
	CatTelemetry Category = "telemetry"
)

var current atomic.Pointer[zap.SugaredLogger]

func init() {
	current.Store(zap.NewNop().Sugar())
}

// SetLogger replaces the global logger. Passing nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	current.Store(l.Sugar())
}

// Sync flushes buffered log entries.
func Sync() error {
	return current.Load().Sync()
}

func with(cat Category) *zap.SugaredLogger {
	return current.Load().With("cat", string(cat))
}

// Debug logs msg at debug level with alternating key/value pairs.
func Debug(cat Category, msg string, kv ...any) {
	with(cat).Debugw(msg, kv...)
}

// Info logs msg at info level.
func Info(cat Category, msg string, kv ...any) {
	with(cat).Infow(msg, kv...)
}

// Warn logs msg at warn level.
func Warn(cat Category, msg string, kv ...any) {
	with(cat).Warnw(msg, kv...)
}

// Error logs msg at error level.
func Error(cat Category, msg string, kv ...any) {
	with(cat).Errorw(msg, kv...)
}

// ErrorErr logs msg at error level with err attached under the "error" key.
func ErrorErr(cat Category, msg string, err error, kv ...any) {
	with(cat).Errorw(msg, append([]any{"error", err}, kv...)...)
}

// SafeGo runs fn in a new goroutine and logs (instead of crashing on) a panic.
// name identifies the goroutine in the log entry.
func SafeGo(name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				Error(CatOrch, "Recovered from panic in goroutine",
					"goroutine", name,
					"panic", fmt.Sprint(r),
					"stack", string(debug.Stack()))
			}
		}()
		fn()
	}()
}
