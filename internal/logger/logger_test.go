package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/samvad-hq/waha-client/internal/config"
	"go.uber.org/zap/zapcore"
)

func TestInitWritesJSONObjects(t *testing.T) {
	var buf bytes.Buffer
	if _, err := initWithWriter(&config.Config{AppName: "wahactl", LogLevel: "debug"}, &buf); err != nil {
		t.Fatalf("initWithWriter: %v", err)
	}
	t.Cleanup(func() { S = nil })

	Global{}.DebugObj("session listed", "session", map[string]any{"name": "default"})
	if err := Close(); err != nil {
		t.Logf("sync: %v", err)
	}

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if line["msg"] != "session listed" || line["app"] != "wahactl" {
		t.Fatalf("unexpected log line: %v", line)
	}
	if _, ok := line["ts"]; !ok {
		t.Fatalf("missing ts key: %v", line)
	}
	session, _ := line["session"].(map[string]any)
	if session["name"] != "default" {
		t.Fatalf("session field = %v", line["session"])
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARNING": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestHelpersAreSafeBeforeInit(t *testing.T) {
	S = nil
	InfoObj("x", "k", 1)
	ErrorObj("x", "k", 1)
	if err := Close(); err != nil {
		t.Fatalf("Close before Init: %v", err)
	}
}
