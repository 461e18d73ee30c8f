package logger

import (
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps a config level name onto zap, unknown names fall back to info
func ParseLevel(level string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// InitLogger replaces the global zap logger.
// maxAge in days, rotationTime in hours, rotationSize in MB. An empty dsn disables sentry.
func InitLogger(level, project, logPath string, maxAge, rotationTime time.Duration, rotationSize uint32, dsn string) {
	if len(project) != 0 {
		projectName = project
	}
	core, err := buildCore(ParseLevel(level), logPath, maxAge, rotationTime, rotationSize)
	if err != nil {
		panic(err)
	}

	if dsn != "" {
		client, err := sentry.NewClient(sentry.ClientOptions{Dsn: dsn})
		if err != nil {
			panic(err)
		}
		core = zapcore.NewTee(core, newSentryCore(client, zapcore.ErrorLevel, map[string]string{"project": projectName}))
	}

	l := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	zap.ReplaceGlobals(l)

	if _, err := zap.RedirectStdLogAt(l, zapcore.ErrorLevel); err != nil {
		panic(err)
	}
}

// Sync flushes buffered entries
func Sync() {
	_ = zap.L().Sync()
}

func Debugf(template string, args ...interface{}) {
	zap.S().Debugf(template, args...)
}

func Infof(template string, args ...interface{}) {
	zap.S().Infof(template, args...)
}

func Warnf(template string, args ...interface{}) {
	zap.S().Warnf(template, args...)
}

func Errorf(template string, args ...interface{}) {
	zap.S().Errorf(template, args...)
}
