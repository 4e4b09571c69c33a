package logging

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerKey struct{}

// helperSkip drops logAt and the exported helper so caller points at the call site.
const helperSkip = 2

// LoggerFromContext returns the logger RequestLogger stored in ctx, or the
// process logger when there is none.
func LoggerFromContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, _ := ctx.Value(loggerKey{}).(*zap.Logger); l != nil {
			return l
		}
	}
	return Logger()
}

func LogInfo(ctx context.Context, msg string, fields ...zap.Field) {
	logAt(ctx, zapcore.InfoLevel, msg, fields)
}

func LogWarn(ctx context.Context, msg string, fields ...zap.Field) {
	logAt(ctx, zapcore.WarnLevel, msg, fields)
}

// LogError appends err as the "error" field unless it is nil.
func LogError(ctx context.Context, msg string, err error, fields ...zap.Field) {
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	logAt(ctx, zapcore.ErrorLevel, msg, fields)
}

func logAt(ctx context.Context, lvl zapcore.Level, msg string, fields []zap.Field) {
	logger := LoggerFromContext(ctx)
	if !logger.Core().Enabled(lvl) {
		return
	}
	if ce := logger.WithOptions(zap.AddCallerSkip(helperSkip)).Check(lvl, msg); ce != nil {
		ce.Write(fields...)
	}
}

func withLogger(ctx context.Context, logger *zap.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}
