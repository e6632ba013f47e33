package security

import "go.uber.org/zap/zapcore"

// Severity ranks a security event. It is derived from the event type,
// never taken from input.
type Severity string

const (
	SeverityInfo Severity = "INFO"
	SeverityWarn Severity = "WARN"
	SeverityHigh Severity = "HIGH"
)

var eventSeverity = map[EventType]Severity{
	EventLoginSuccess: SeverityInfo,

	EventLoginFailed:        SeverityWarn,
	EventRateLimitTriggered: SeverityWarn,
	EventUnauthorizedAccess: SeverityWarn,

	EventLoginBlocked: SeverityHigh,
	EventBlockCreated: SeverityHigh,
}

// SeverityOf returns the severity for an event type. Unknown types are WARN.
func SeverityOf(event EventType) Severity {
	if s, ok := eventSeverity[event]; ok {
		return s
	}
	return SeverityWarn
}

func (s Severity) level() zapcore.Level {
	switch s {
	case SeverityInfo:
		return zapcore.InfoLevel
	case SeverityHigh:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}
