package sscene

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Logger is the diagnostic sink used by Scene. Render-time backend errors are
// reported through Warnf and never interrupt a frame.
type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type level uint8

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

var levelNames = [...]string{
	levelDebug: "DEBUG",
	levelInfo:  "INFO",
	levelWarn:  "WARN",
	levelError: "ERROR",
}

// DefaultLogger writes "[prefix] LEVEL: message" lines. Warnings and errors
// go to a separate writer and are counted, so a host can tell a frame loop
// that only rendered from one that also complained.
type DefaultLogger struct {
	mu       sync.Mutex
	debug    bool
	prefix   string
	out      *log.Logger
	err      *log.Logger
	problems int
}

// NewDefaultLogger logs to stdout and stderr.
func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return NewWriterLogger(prefix, debug, os.Stdout, os.Stderr)
}

// NewWriterLogger sends debug and info lines to out, warnings and errors to errOut.
func NewWriterLogger(prefix string, debug bool, out, errOut io.Writer) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &DefaultLogger{
		debug:  debug,
		prefix: prefix,
		out:    log.New(out, "", flags),
		err:    log.New(errOut, "", flags),
	}
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	l.debug = enabled
	l.mu.Unlock()
}

// Problems returns how many warnings and errors have been logged.
func (l *DefaultLogger) Problems() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.problems
}

func (l *DefaultLogger) logf(lv level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if l.prefix != "" {
		msg = fmt.Sprintf("[%s] %s: %s", l.prefix, levelNames[lv], msg)
	} else {
		msg = levelNames[lv] + ": " + msg
	}

	l.mu.Lock()
	if lv < levelWarn {
		l.mu.Unlock()
		l.out.Print(msg)
		return
	}
	l.problems++
	l.mu.Unlock()
	l.err.Print(msg)
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.logf(levelDebug, format, args...)
}

func (l *DefaultLogger) Infof(format string, args ...any)  { l.logf(levelInfo, format, args...) }
func (l *DefaultLogger) Warnf(format string, args ...any)  { l.logf(levelWarn, format, args...) }
func (l *DefaultLogger) Errorf(format string, args ...any) { l.logf(levelError, format, args...) }

func (st FrameStats) String() string {
	return fmt.Sprintf("%d meshes, %d lines, %d overlays, %d errors",
		st.MeshDraws, st.LineDraws, st.OverlayDraws, st.Errors)
}

// LogFrameStats reports one frame's draw counts at debug level. Frames that
// hit backend errors are also reported when debug output is off.
func LogFrameStats(l Logger, frame int, st FrameStats) {
	switch {
	case st.Errors > 0:
		l.Infof("frame %d: %v", frame, st)
	case l.DebugEnabled():
		l.Debugf("frame %d: %v", frame, st)
	}
}

type nopLogger struct{}

func NewNopLogger() Logger { return &nopLogger{} }
func (n *nopLogger) DebugEnabled() bool                { return false }
func (n *nopLogger) SetDebug(enabled bool)             {}
func (n *nopLogger) Debugf(format string, args ...any) {}
func (n *nopLogger) Infof(format string, args ...any)  {}
func (n *nopLogger) Warnf(format string, args ...any)  {}
func (n *nopLogger) Errorf(format string, args ...any) {}
