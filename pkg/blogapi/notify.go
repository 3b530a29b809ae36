package blogapi

import (
	"io"
	"os"

	"github.com/fatih/color"
)

// Notifier receives transient user-visible notifications. The error path
// always notifies exactly once per failure before the error propagates, so
// a failure is visible even if the caller swallows it.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// NopNotifier discards all notifications. Useful for library consumers and
// tests that assert on errors directly.
type NopNotifier struct{}

// Success implements Notifier.
func (NopNotifier) Success(msg string) {}

// Error implements Notifier.
func (NopNotifier) Error(msg string) {}

// TerminalNotifier prints notifications to a terminal writer.
type TerminalNotifier struct {
	out     io.Writer
	success *color.Color
	failure *color.Color
}

// NewTerminalNotifier creates a notifier writing to w. If w is nil, stderr
// is used so notifications never mix with structured command output.
func NewTerminalNotifier(w io.Writer) *TerminalNotifier {
	if w == nil {
		w = os.Stderr
	}

	return &TerminalNotifier{
		out:     w,
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
	}
}

// Success implements Notifier.
func (n *TerminalNotifier) Success(msg string) {
	_, _ = n.success.Fprintf(n.out, "✓ %s\n", msg)
}

// Error implements Notifier.
func (n *TerminalNotifier) Error(msg string) {
	_, _ = n.failure.Fprintf(n.out, "✗ %s\n", msg)
}

// RecordingNotifier collects notifications in order, for tests.
type RecordingNotifier struct {
	Successes []string
	Errors    []string
}

// Success implements Notifier.
func (n *RecordingNotifier) Success(msg string) {
	n.Successes = append(n.Successes, msg)
}

// Error implements Notifier.
func (n *RecordingNotifier) Error(msg string) {
	n.Errors = append(n.Errors, msg)
}
