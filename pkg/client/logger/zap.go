package logger

import (
	"go.uber.org/zap"
)

// ZapLogger adapts a zap.Logger to the Logger interface so applications
// already on zap can plug their logger straight into the client.
type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger wraps the given zap.Logger.
func NewZapLogger(l *zap.Logger) Logger {
	return &ZapLogger{logger: l}
}

func (l *ZapLogger) Debug(msg string) { l.logger.Debug(msg) }
func (l *ZapLogger) Info(msg string)  { l.logger.Info(msg) }
func (l *ZapLogger) Warn(msg string)  { l.logger.Warn(msg) }
func (l *ZapLogger) Error(msg string) { l.logger.Error(msg) }

func (l *ZapLogger) Debugf(format string, args ...interface{}) {
	l.logger.Sugar().Debugf(format, args...)
}

func (l *ZapLogger) Infof(format string, args ...interface{}) {
	l.logger.Sugar().Infof(format, args...)
}

func (l *ZapLogger) Warnf(format string, args ...interface{}) {
	l.logger.Sugar().Warnf(format, args...)
}

func (l *ZapLogger) Errorf(format string, args ...interface{}) {
	l.logger.Sugar().Errorf(format, args...)
}

func (l *ZapLogger) WithFields(fields ...Field) Logger {
	zapFields := make([]zap.Field, len(fields))
	for i, f := range fields {
		zapFields[i] = zap.Any(f.Key, f.Value)
	}
	return &ZapLogger{logger: l.logger.With(zapFields...)}
}
