// Package logging builds the resolver's logger: everything goes to a
// debug-level file sink, and a console sink that only prints warnings
// and above unless verbose output was requested. This mirrors the
// original resolver's setup_logging(verbose_output), rebuilt on top of
// zap's core/tee machinery instead of the stdlib logging package.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a *zap.Logger that writes every message at debug level and
// above to logPath, and writes to stderr at warn level (or debug, when
// verbose is true).
func New(logPath string, verbose bool) (*zap.Logger, error) {
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}

	fileEncoderCfg := zap.NewProductionEncoderConfig()
	fileEncoder := zapcore.NewJSONEncoder(fileEncoderCfg)

	consoleEncoderCfg := zap.NewProductionEncoderConfig()
	consoleEncoderCfg.TimeKey = ""
	consoleEncoder := zapcore.NewConsoleEncoder(consoleEncoderCfg)

	consoleLevel := zapcore.WarnLevel
	if verbose {
		consoleLevel = zapcore.DebugLevel
	}

	fileCore := zapcore.NewCore(fileEncoder, zapcore.AddSync(file), zapcore.DebugLevel)
	consoleCore := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stderr), consoleLevel)

	return zap.New(zapcore.NewTee(fileCore, consoleCore)), nil
}

// Discard returns a logger that drops everything, for tests and
// contexts that don't care about resolver diagnostics.
func Discard() *zap.Logger {
	return zap.NewNop()
}
