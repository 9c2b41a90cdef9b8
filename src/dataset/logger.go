package dataset

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// LogLevel orders message severities; anything below the global level is
// dropped.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

var currentLevel int32 = int32(LevelInfo)

var baseLogger = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds)

// SetLogLevel sets the global level from its flag spelling. An unknown name
// leaves the level unchanged.
func SetLogLevel(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		atomic.StoreInt32(&currentLevel, int32(LevelDebug))
	case "info":
		atomic.StoreInt32(&currentLevel, int32(LevelInfo))
	case "warn", "warning":
		atomic.StoreInt32(&currentLevel, int32(LevelWarn))
	case "error":
		atomic.StoreInt32(&currentLevel, int32(LevelError))
	}
}

func logf(l LogLevel, format string, args ...interface{}) {
	if LogLevel(atomic.LoadInt32(&currentLevel)) > l {
		return
	}
	msg := format
	// A pre-formatted message with no args must not pass through fmt again:
	// literal % runs would render as %!x(MISSING).
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	baseLogger.Printf("[%s] %s", l, msg)
}

func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// TimeTrack logs a phase's elapsed time at debug level; defer it with the
// phase's start time.
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start))
}
