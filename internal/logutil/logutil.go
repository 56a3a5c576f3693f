package logutil

import (
	"fmt"
	"strings"
	"sync"

	"github.com/evdnx/golog"
)

var (
	sharedLogger     *golog.Logger
	sharedLoggerOnce sync.Once
	sharedLoggerErr  error
)

// Default returns a lazily constructed shared logger.
func Default() *golog.Logger {
	sharedLoggerOnce.Do(func() {
		sharedLogger, sharedLoggerErr = New("info")
	})

	if sharedLoggerErr != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", sharedLoggerErr))
	}

	return sharedLogger
}

// New builds a console logger at the named level (debug, info, warn, error).
func New(level string) (*golog.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	return golog.NewLogger(
		golog.WithStdOutProvider(golog.ConsoleEncoder),
		golog.WithLevel(lvl),
	)
}

func parseLevel(level string) (golog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return golog.DebugLevel, nil
	case "", "info":
		return golog.InfoLevel, nil
	case "warn", "warning":
		return golog.WarnLevel, nil
	case "error":
		return golog.ErrorLevel, nil
	default:
		return golog.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}
