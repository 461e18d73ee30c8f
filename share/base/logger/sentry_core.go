package logger

import (
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap/zapcore"
)

const sentryFlushTimeout = 3 * time.Second

// sentryCore reports entries at or above its level as sentry events, logger fields go to Extra
type sentryCore struct {
	zapcore.LevelEnabler
	client *sentry.Client
	tags   map[string]string
	fields map[string]interface{}
}

func newSentryCore(client *sentry.Client, level zapcore.Level, tags map[string]string) zapcore.Core {
	return &sentryCore{LevelEnabler: level, client: client, tags: tags}
}

func (c *sentryCore) extras(fs []zapcore.Field) map[string]interface{} {
	enc := zapcore.NewMapObjectEncoder()
	for k, v := range c.fields {
		enc.Fields[k] = v
	}
	for _, f := range fs {
		f.AddTo(enc)
	}
	return enc.Fields
}

func (c *sentryCore) With(fs []zapcore.Field) zapcore.Core {
	return &sentryCore{LevelEnabler: c.LevelEnabler, client: c.client, tags: c.tags, fields: c.extras(fs)}
}

func (c *sentryCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *sentryCore) Write(ent zapcore.Entry, fs []zapcore.Field) error {
	event := sentry.NewEvent()
	event.Level = sentry.LevelError
	if ent.Level > zapcore.ErrorLevel {
		event.Level = sentry.LevelFatal
	}
	event.Message = ent.Message
	event.Timestamp = ent.Time
	event.Logger = projectName
	event.Tags = c.tags
	event.Extra = c.extras(fs)
	if ent.Caller.Defined {
		event.Extra["caller"] = ent.Caller.TrimmedPath()
	}
	c.client.CaptureEvent(event, nil, sentry.CurrentHub().Scope())

	// fatal and panic entries end the process
	if ent.Level > zapcore.ErrorLevel {
		c.client.Flush(sentryFlushTimeout)
	}
	return nil
}

func (c *sentryCore) Sync() error {
	c.client.Flush(sentryFlushTimeout)
	return nil
}
