// SPDX-License-Identifier: MIT

// Package logging builds the logr.Logger handed to the topology builder and
// the CLI. Records go to stderr through zap, so stdout stays free for the
// generated artifacts.
//
// Verbosity follows logr: V(DEBUG) lines appear at level "debug", V(TRACE)
// lines at level "trace".
package logging

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logr verbosity levels used across the module.
const (
	DEBUG = 1
	TRACE = 2
)

// ErrInvalidLevel indicates a level name Level does not know.
var ErrInvalidLevel = errors.New("logging: invalid level")

// Level maps a level name to a zap level. "debug" and "trace" map to the
// negative zap levels that zapr enables for V(DEBUG) and V(TRACE).
func Level(name string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return zapcore.Level(-TRACE), nil
	case "debug":
		return zapcore.Level(-DEBUG), nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("Level(%q): %w", name, ErrInvalidLevel)
	}
}

// New returns a zap-backed logger at the named level. Development mode
// switches to the console encoder with caller and stack annotations.
func New(level string, development bool) (logr.Logger, error) {
	lvl, err := Level(level)
	if err != nil {
		return logr.Discard(), err
	}

	zc := zap.NewProductionConfig()
	if development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.Sampling = nil

	z, err := zc.Build()
	if err != nil {
		return logr.Discard(), fmt.Errorf("New: %w", err)
	}

	return zapr.NewLogger(z), nil
}

// Sync flushes the zap core behind l. Loggers not built by New are ignored.
func Sync(l logr.Logger) error {
	u, ok := l.GetSink().(zapr.Underlier)
	if !ok {
		return nil
	}
	// stderr returns EINVAL/ENOTTY on Sync on some platforms.
	if err := u.GetUnderlying().Sync(); err != nil && !isBenignSyncError(err) {
		return err
	}
	return nil
}

func isBenignSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "invalid argument") || strings.Contains(msg, "inappropriate ioctl")
}
