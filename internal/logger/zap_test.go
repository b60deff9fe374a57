package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		DebugLevel: zapcore.DebugLevel,
		InfoLevel:  zapcore.InfoLevel,
		WarnLevel:  zapcore.WarnLevel,
		ErrorLevel: zapcore.ErrorLevel,
		" WARN ":   zapcore.WarnLevel,
		"fatal":    zapcore.InfoLevel,
		"verbose":  zapcore.InfoLevel,
		"":         zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: InfoLevel, Format: JSONFormat}, &buf)
	log.Debugw("hidden")
	log.Infow("user_registered", "user_id", "u1")
	_ = log.Sync()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %q", buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("not json: %v (%s)", err, lines[0])
	}
	if entry["msg"] != "user_registered" || entry["user_id"] != "u1" || entry["logger"] != "travro" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestNew_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: WarnLevel}, &buf)
	log.Infow("hidden")
	log.Warnw("redis unreachable", "addr", "localhost:6379")
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info logged at warn level: %q", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "redis unreachable") {
		t.Fatalf("unexpected console output %q", out)
	}
}

func TestInit_ReturnsSameInstance(t *testing.T) {
	a := Init(Options{Level: DebugLevel})
	b := Init(Options{Level: ErrorLevel, Format: JSONFormat})
	if a != b {
		t.Fatalf("Init returned different instances")
	}
	if a.SugaredLogger == nil {
		t.Fatalf("nil sugared logger")
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Infow("ignored", "k", "v")
}
