package logger

import (
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
}

// New writes to w with the level and encoding from opts.
func New(opts Options, w io.Writer) *Logger {
	ws := zapcore.Lock(zapcore.AddSync(w))
	core := zapcore.NewCore(newEncoder(opts.Format), ws, zap.NewAtomicLevelAt(parseLevel(opts.Level)))
	return &Logger{
		SugaredLogger: zap.New(core, zap.AddCaller()).Sugar().Named("travro"),
	}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// parseLevel maps log.level to a zap level. Anything unknown, or outside
// debug..error, falls back to info.
func parseLevel(s string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl < zapcore.DebugLevel || lvl > zapcore.ErrorLevel {
		return zapcore.InfoLevel
	}
	return lvl
}

func newEncoder(format string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder

	if strings.EqualFold(strings.TrimSpace(format), JSONFormat) {
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}
