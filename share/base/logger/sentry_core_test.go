package logger

import (
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type recordingTransport struct {
	events  []*sentry.Event
	flushes int
}

func (t *recordingTransport) Flush(time.Duration) bool {
	t.flushes++
	return true
}

func (t *recordingTransport) Configure(sentry.ClientOptions) {}

func (t *recordingTransport) SendEvent(event *sentry.Event) {
	t.events = append(t.events, event)
}

func TestSentryCore(t *testing.T) {
	Convey("error entries become sentry events", t, func() {
		transport := &recordingTransport{}
		client, err := sentry.NewClient(sentry.ClientOptions{Transport: transport})
		So(err, ShouldBeNil)

		l := zap.New(newSentryCore(client, zapcore.ErrorLevel, map[string]string{"project": "ssdps"})).
			With(zap.String("input", "matrix.txt"))
		l.Info("loaded")
		l.Warn("slow")
		l.Error("mining failed", zap.Int("rows", 3))

		So(transport.events, ShouldHaveLength, 1)
		event := transport.events[0]
		So(event.Message, ShouldEqual, "mining failed")
		So(event.Level, ShouldEqual, sentry.LevelError)
		So(event.Tags["project"], ShouldEqual, "ssdps")
		So(event.Extra["input"], ShouldEqual, "matrix.txt")
		So(event.Extra["rows"], ShouldEqual, int64(3))
		So(transport.flushes, ShouldEqual, 0)

		So(l.Sync(), ShouldBeNil)
		So(transport.flushes, ShouldEqual, 1)
	})
}
