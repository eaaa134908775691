package rhi

import "log/slog"

// ReportKind classifies a debugger report.
type ReportKind uint8

const (
	// ReportError marks a usage violation: the call is almost certainly
	// wrong, but it is still forwarded to the device.
	ReportError ReportKind = iota

	// ReportWarning marks a condition that is well-defined but likely a
	// mistake (e.g. trailing vertices a topology cannot use).
	ReportWarning
)

// String returns the string representation of a ReportKind.
func (k ReportKind) String() string {
	if k == ReportWarning {
		return "warning"
	}
	return "error"
}

// Debugger receives validation reports. Reports are fire-and-forget:
// the caller never blocks on or reacts to the sink's behavior, and the
// offending call is forwarded to the device regardless.
//
// The source argument names the operation that triggered the report
// (e.g. "DrawIndexed"); message is a human-readable description
// carrying the offending values.
type Debugger interface {
	Report(kind ReportKind, source, message string)
}

// LogDebugger forwards reports to a slog logger. The zero value logs
// through the package logger (see SetLogger).
type LogDebugger struct {
	// Logger receives the reports. Nil falls back to Logger().
	Logger *slog.Logger
}

// Report implements Debugger. Errors log at Warn level (they are
// advisory, not fatal), warnings at Info level.
func (d *LogDebugger) Report(kind ReportKind, source, message string) {
	l := d.Logger
	if l == nil {
		l = Logger()
	}
	if kind == ReportError {
		l.Warn("validation", "source", source, "message", message)
	} else {
		l.Info("validation", "source", source, "message", message)
	}
}
