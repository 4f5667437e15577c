// Package logger holds the loggers shared by the layout packages.
//
// Layout never fails: unsupported values degrade silently, and the
// degradation is reported on WarningLogger.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// ProgressLogger logs the main steps of a layout pass, at debug level.
	ProgressLogger *zap.SugaredLogger

	// WarningLogger emits a warning for each non fatal error, like unsupported
	// track sizing functions or malformed placements.
	WarningLogger *zap.SugaredLogger
)

func init() {
	core := zapcore.NewCore(consoleEncoder(), zapcore.Lock(os.Stderr), zap.WarnLevel)
	SetCore(core)
}

// Config configures the global loggers.
type Config struct {
	Level  string `mapstructure:"level" yaml:"level"`   // debug, info, warn, error
	Format string `mapstructure:"format" yaml:"format"` // console or json
	// File, if not empty, also writes JSON logs to a rotated file.
	File       string `mapstructure:"file" yaml:"file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"` // days
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// Setup replaces the global loggers according to cfg.
// Console output goes to stderr, so that stdout stays free for results.
func Setup(cfg Config) error {
	level := zap.NewAtomicLevel()
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	} else {
		level.SetLevel(zap.WarnLevel)
	}

	var enc zapcore.Encoder
	switch cfg.Format {
	case "", "console":
		enc = consoleEncoder()
	case "json":
		enc = jsonEncoder()
	default:
		return fmt.Errorf("invalid log format %q", cfg.Format)
	}

	cores := []zapcore.Core{zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)}
	if cfg.File != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
		cores = append(cores, zapcore.NewCore(jsonEncoder(), fileWriter, level))
	}
	SetCore(zapcore.NewTee(cores...))
	return nil
}

// SetCore routes both loggers to core. It is used by Setup and by tests
// capturing the emitted logs.
func SetCore(core zapcore.Core) {
	base := zap.New(core).Named("gridlayout")
	ProgressLogger = base.Named("progress").Sugar()
	WarningLogger = base.Named("warning").Sugar()
}

// Sync flushes buffered entries; errors from syncing a terminal are ignored.
func Sync() {
	_ = ProgressLogger.Sync()
	_ = WarningLogger.Sync()
}

func consoleEncoder() zapcore.Encoder {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

func jsonEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00")
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(cfg)
}
