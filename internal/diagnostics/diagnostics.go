// Package diagnostics is the shared logger for every minification phase.
package diagnostics

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
)

var (
	// Logger is the global logger used by every core package.
	Logger *log.Logger

	// Verbose controls whether debug messages are printed.
	Verbose bool
)

func init() {
	Logger = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)
	Verbose = os.Getenv("MINIFY_VERBOSE") == "1"
}

// SetVerbose enables or disables verbose logging at runtime.
func SetVerbose(enabled bool) {
	Verbose = enabled
}

// SetOutput redirects logger output (useful for testing).
func SetOutput(w io.Writer) {
	Logger.SetOutput(w)
}

// Debugf prints a debug message if verbose mode is enabled.
func Debugf(format string, args ...interface{}) {
	if Verbose {
		Logger.Printf("[DEBUG] "+format, args...)
	}
}

// Infof prints an info message if verbose mode is enabled.
func Infof(format string, args ...interface{}) {
	if Verbose {
		Logger.Printf("[INFO] "+format, args...)
	}
}

// Warnf prints a warning message if verbose mode is enabled.
func Warnf(format string, args ...interface{}) {
	if Verbose {
		Logger.Printf("[WARN] "+format, args...)
	}
}

// Errorf always prints an error message regardless of verbose mode.
func Errorf(format string, args ...interface{}) {
	Logger.Printf("[ERROR] "+format, args...)
}

// Phase is a named minification stage's logging handle: it prefixes every
// line with its own tag so call sites stop spelling "[classminify]"-style
// literals by hand, and it keeps a running renamed/kept tally a caller can
// report once the stage finishes, independent of (and a cross-check on) the
// renaming package's own end-of-run Summary.
type Phase struct {
	name    string
	renamed int64
	kept    int64
}

// ForPhase returns a logging handle tagged with name.
func ForPhase(name string) *Phase {
	return &Phase{name: name}
}

// Debugf prints a debug message tagged with the phase name.
func (p *Phase) Debugf(format string, args ...interface{}) {
	Debugf("[%s] %s", p.name, fmt.Sprintf(format, args...))
}

// Infof prints an info message tagged with the phase name.
func (p *Phase) Infof(format string, args ...interface{}) {
	Infof("[%s] %s", p.name, fmt.Sprintf(format, args...))
}

// Warnf prints a warning message tagged with the phase name.
func (p *Phase) Warnf(format string, args ...interface{}) {
	Warnf("[%s] %s", p.name, fmt.Sprintf(format, args...))
}

// RecordRenamed increments the phase's renamed-member counter. Safe to call
// from concurrent goroutines.
func (p *Phase) RecordRenamed() {
	atomic.AddInt64(&p.renamed, 1)
}

// RecordKept increments the phase's kept-member counter. Safe to call from
// concurrent goroutines.
func (p *Phase) RecordKept() {
	atomic.AddInt64(&p.kept, 1)
}

// Counts returns the phase's renamed and kept tallies so far.
func (p *Phase) Counts() (renamed, kept int64) {
	return atomic.LoadInt64(&p.renamed), atomic.LoadInt64(&p.kept)
}

// Done logs the phase's final renamed/kept tally at info level.
func (p *Phase) Done() {
	renamed, kept := p.Counts()
	Infof("[%s] complete: %d renamed, %d kept", p.name, renamed, kept)
}
