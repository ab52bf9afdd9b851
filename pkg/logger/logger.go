package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config represents logger configuration
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	OutputPath string // stdout, stderr, or file path
}

// New creates a new logger based on configuration. The returned close
// function syncs the logger and releases a log file; it is safe to call for
// stderr and stdout.
func New(config Config) (*zap.Logger, func() error, error) {
	writer, closeOutput, err := openOutput(config.OutputPath)
	if err != nil {
		return nil, nil, err
	}
	log := NewWithWriter(config, writer)
	return log, func() error {
		// Sync on a terminal or pipe reports EINVAL; only the file close matters.
		_ = log.Sync()
		return closeOutput()
	}, nil
}

// NewWithWriter creates a logger that writes to the given writer
func NewWithWriter(config Config, w io.Writer) *zap.Logger {
	// Parse log level
	level, err := zapcore.ParseLevel(config.Level)
	if err != nil {
		level = zapcore.WarnLevel
	}

	// Configure encoder
	var encoder zapcore.Encoder
	if config.Format == "json" {
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.TimeKey = ""
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)

	opts := []zap.Option{}
	if level == zapcore.DebugLevel {
		opts = append(opts, zap.AddCaller())
	}
	return zap.New(core, opts...)
}

// openOutput resolves the configured output path.
// Diagnostics never go to stdout unless asked for explicitly: stdout may carry the stream.
func openOutput(path string) (zapcore.WriteSyncer, func() error, error) {
	noop := func() error { return nil }
	switch path {
	case "stderr", "":
		return zapcore.Lock(os.Stderr), noop, nil
	case "stdout":
		return zapcore.Lock(os.Stdout), noop, nil
	default:
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, err
		}
		return zapcore.Lock(file), file.Close, nil
	}
}

// NewDefault creates the default command line logger on stderr
func NewDefault() *zap.Logger {
	return NewWithWriter(Config{
		Level:  "warn",
		Format: "console",
	}, zapcore.Lock(os.Stderr))
}
