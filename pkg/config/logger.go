package config

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a console logger. level is one of none, normal or debug;
// anything at Error and above is written to errOut.
func NewLogger(level string, out, errOut io.Writer) *zap.Logger {
	var low zapcore.Level
	switch level {
	case "debug":
		low = zapcore.DebugLevel
	case "normal":
		low = zapcore.InfoLevel
	default:
		return zap.NewNop()
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	enc := zapcore.NewConsoleEncoder(ec)

	lp := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(out)),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return low <= lvl && lvl < zapcore.ErrorLevel
		}))
	hp := zapcore.NewCore(enc.Clone(), zapcore.Lock(zapcore.AddSync(errOut)),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= zapcore.ErrorLevel
		}))
	return zap.New(zapcore.NewTee(lp, hp))
}
