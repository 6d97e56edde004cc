package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}

	if err := Init(WithFormat("xml")); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a JSON logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(Init(WithOutput(&buf), WithFormat("json")), ShouldBeNil)
		ctx := WithRequestID(context.Background(), "req-42")

		Convey("When logging with fields", func() {
			Named("resolver").Info(ctx, "telemetry unavailable",
				String("icao24", "3c6444"),
				Bool("on_ground", false),
				Duration("took", 1500*time.Millisecond),
				Error(errors.New("boom")),
			)

			var line map[string]any
			So(json.Unmarshal(buf.Bytes(), &line), ShouldBeNil)

			Convey("Then the line should carry the fields and the request id", func() {
				So(line["msg"], ShouldEqual, "telemetry unavailable")
				So(line["component"], ShouldEqual, "resolver")
				So(line["icao24"], ShouldEqual, "3c6444")
				So(line["request_id"], ShouldEqual, "req-42")
				So(line["error"], ShouldEqual, "boom")
				So(line["source"], ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When the level is raised above the message", func() {
			So(SetLevelString("error"), ShouldBeNil)
			Get().Warn(ctx, "hidden")

			Convey("Then nothing should be written", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
		})

		Reset(func() { _ = SetLevelString("info") })
	})
}

func TestLoggerWith(t *testing.T) {
	Convey("Given a text logger with bound fields", t, func() {
		var buf bytes.Buffer
		So(Init(WithOutput(&buf)), ShouldBeNil)

		Get().With(String("provider", "opensky")).Debug(context.Background(), "dropped")
		Get().With(String("provider", "opensky")).Info(context.Background(), "kept")

		Convey("Then only enabled levels should be written with the bound field", func() {
			out := buf.String()
			So(out, ShouldNotContainSubstring, "dropped")
			So(out, ShouldContainSubstring, "kept")
			So(out, ShouldContainSubstring, "provider=opensky")
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		for _, lvl := range []string{"debug", "INFO", "", "warn", "warning", "error"} {
			So(SetLevelString(lvl), ShouldBeNil)
		}
		So(SetLevelString("verbose"), ShouldNotBeNil)
		_ = SetLevelString("info")
	})
}

func TestNop(t *testing.T) {
	Convey("Given a nop logger", t, func() {
		So(func() { Nop().Error(context.Background(), "ignored", String("k", strings.Repeat("v", 3))) }, ShouldNotPanic)
	})
}
