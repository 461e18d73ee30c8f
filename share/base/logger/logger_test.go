package logger

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	Convey("level names", t, func() {
		So(ParseLevel("debug"), ShouldEqual, zapcore.DebugLevel)
		So(ParseLevel(" WARN "), ShouldEqual, zapcore.WarnLevel)
		So(ParseLevel("nonsense"), ShouldEqual, zapcore.InfoLevel)
		So(ParseLevel(""), ShouldEqual, zapcore.InfoLevel)
	})
}

func TestInitLogger(t *testing.T) {
	Convey("files are created under the log directory", t, func() {
		dir := filepath.Join(t.TempDir(), "logs")
		prev := zap.L()
		defer zap.ReplaceGlobals(prev)

		InitLogger("info", "ssdps-test", dir, 1, 24, 16, "")
		Infof("hello %s", "world")
		Errorf("boom %d", 1)
		Sync()

		_, err := os.Stat(dir)
		So(err, ShouldBeNil)
		entries, err := os.ReadDir(dir)
		So(err, ShouldBeNil)
		So(len(entries), ShouldBeGreaterThan, 0)
	})
}
