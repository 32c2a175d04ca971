// internal/logging/logging.go
package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the console logger. The level comes from FOLIO_LOG_LEVEL unless
// debug forces it down to debug. When FOLIO_LOG_FILE is set, output is also
// written to that file with rotation.
func New(debug bool) *zap.Logger {
	level := parseLevel(os.Getenv("FOLIO_LOG_LEVEL"))
	if debug {
		level = zap.DebugLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleCore := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stderr), level)

	file := strings.TrimSpace(os.Getenv("FOLIO_LOG_FILE"))
	if file == "" {
		return zap.New(consoleCore)
	}

	fileConfig := zap.NewProductionEncoderConfig()
	fileConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(fileConfig), zapcore.AddSync(&lumberjack.Logger{
		Filename:   file,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}), level)
	return zap.New(zapcore.NewTee(consoleCore, fileCore))
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zap.DebugLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
