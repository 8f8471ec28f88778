package logging

import (
	"testing"

	"logos/config"
)

func TestNewBuildsALogger(t *testing.T) {
	l, err := New(config.LoggingConfig{Level: "debug", Format: "console"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if l == nil {
		t.Fatalf("expected a non-nil logger")
	}
	_ = l.Sync()
}

func TestOrNopHandlesNil(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatalf("OrNop(nil) should never return nil")
	}
}
