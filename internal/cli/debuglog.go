package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// LogFunc writes one formatted debug line.
type LogFunc func(format string, args ...any)

// OpenDebugLog opens path for appending and returns a log function that
// timestamps each line, plus a close function. An empty path disables
// logging: the returned log function discards everything.
func OpenDebugLog(path string) (LogFunc, func() error, error) {
	if path == "" {
		return func(string, ...any) {}, func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}

	return NewLogFunc(f), f.Close, nil
}

// NewLogFunc returns a LogFunc writing to w. It is safe for concurrent use.
func NewLogFunc(w io.Writer) LogFunc {
	var mu sync.Mutex

	return func(format string, args ...any) {
		mu.Lock()
		defer mu.Unlock()

		fmt.Fprintf(w, "%s "+format+"\n", append([]any{time.Now().Format("15:04:05.000")}, args...)...)
	}
}
