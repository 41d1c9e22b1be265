package logging

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug": zerolog.DebugLevel,
		"WARN":  zerolog.WarnLevel,
		"error": zerolog.ErrorLevel,
		"":      zerolog.InfoLevel,
		"loud":  zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestStartupLogger_SkipsEmptyResources(t *testing.T) {
	s := NewStartupLogger("gallery-web").
		Resource("archiveBucket", "").
		Resource("ssmApiKeyParam", "/prompt-gallery/gemini-api-key").
		Feature("ai", true)

	if _, ok := s.resources["archiveBucket"]; ok {
		t.Error("empty resource should not be registered")
	}
	if s.resources["ssmApiKeyParam"] != "/prompt-gallery/gemini-api-key" {
		t.Errorf("unexpected resources: %v", s.resources)
	}
	if !s.features["ai"] {
		t.Error("expected ai feature flag")
	}
}
