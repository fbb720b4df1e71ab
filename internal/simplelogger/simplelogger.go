// Package simplelogger traces label transitions and frames to a file. Inside
// a running TUI stdout belongs to the renderer, so the trace goes wherever
// NUMBERSCROLL_LOG_FILE points; with the variable unset the package is inert.
package simplelogger

import (
	"bytes"
	"fmt"
	"os"
	"sync"
)

// EnvVar names the environment variable holding the trace file path.
const EnvVar = "NUMBERSCROLL_LOG_FILE"

var mu sync.Mutex

// Enabled reports whether Log currently writes anywhere. Callers on a frame
// path can skip building trace arguments when it is off.
func Enabled() bool {
	return os.Getenv(EnvVar) != ""
}

// Log appends a printf-formatted line to the trace file. A missing or
// unopenable path makes it a no-op; tracing must never take the label down.
func Log(format string, args ...any) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return
	}

	// Serialize open/write/close to reduce interleaving within a single process.
	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	var b bytes.Buffer
	_, _ = fmt.Fprintf(&b, format, args...)
	if b.Len() == 0 || b.Bytes()[b.Len()-1] != '\n' {
		_ = b.WriteByte('\n')
	}
	_, _ = f.Write(b.Bytes())
}
