package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWritesJSONWithService(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "beerctl", Level: ParseLevel("debug"), Output: buf})

	log.Debug().Str("op", "list").Msg("beer api request")

	for _, want := range []string{`"service":"beerctl"`, `"op":"list"`, `"level":"debug"`, `"message":"beer api request"`} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Fatalf("expected %s in entry=%s", want, buf.String())
		}
	}
}

func TestNewFiltersBelowLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "beerctl", Level: zerolog.WarnLevel, Output: buf})

	log.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %s", buf.String())
	}

	log.Warn().Msg("shown")
	if !bytes.Contains(buf.Bytes(), []byte("shown")) {
		t.Fatalf("expected warn entry, got %s", buf.String())
	}
}

func TestNewConsoleFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "beerctl", Format: "console", Output: buf})

	log.Info().Msg("hello")

	if bytes.HasPrefix(bytes.TrimSpace(buf.Bytes()), []byte("{")) {
		t.Fatalf("expected console output, got JSON: %s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("hello")) {
		t.Fatalf("expected message in console output: %s", buf.String())
	}
}

func TestParseLevelDefaults(t *testing.T) {
	tests := map[string]zerolog.Level{
		"":        zerolog.InfoLevel,
		"invalid": zerolog.InfoLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
	}

	for input, want := range tests {
		if got := ParseLevel(input); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestPrintfAdapter(t *testing.T) {
	buf := &bytes.Buffer{}
	p := Printf{Logger: New(Options{Level: zerolog.DebugLevel, Output: buf})}

	p.Printf("oauth2: obtained new access token (expires: %s)", "never")

	if !bytes.Contains(buf.Bytes(), []byte("expires: never")) {
		t.Fatalf("expected formatted message, got %s", buf.String())
	}
}
