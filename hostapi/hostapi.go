// Package hostapi holds the integration points a host supplies to the
// bridge: a log sink and the controller device's own identity, used in
// discovery documents so every mesh entity hangs off the bridge device.
package hostapi

import "log"

// Logger is the narrow log sink the bridge writes to. Hosts plug in
// whatever logging stack they run; NewStdLogger adapts the standard
// library's log package for simple binaries.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// HostInfo identifies the controller device the bridge runs on.
type HostInfo struct {
	// Name is the controller's human-readable name, used as the
	// via-device in discovery documents.
	Name string

	// MAC is the controller's own MAC address, used to build the bridge
	// device identifier.
	MAC string
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

type stdLogger struct {
	logger *log.Logger
}

// NewStdLogger adapts a *log.Logger (or the package default when nil)
// into a leveled Logger by prefixing each line with its level.
func NewStdLogger(logger *log.Logger) Logger {
	if logger == nil {
		logger = log.Default()
	}
	return &stdLogger{logger: logger}
}

func (l *stdLogger) Debugf(format string, args ...any) { l.logger.Printf("DEBUG "+format, args...) }
func (l *stdLogger) Infof(format string, args ...any)  { l.logger.Printf("INFO "+format, args...) }
func (l *stdLogger) Warnf(format string, args ...any)  { l.logger.Printf("WARN "+format, args...) }
func (l *stdLogger) Errorf(format string, args ...any) { l.logger.Printf("ERROR "+format, args...) }
