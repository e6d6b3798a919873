package logger

import (
	"context"
	"errors"
	"log/slog"
	"testing"
)

func TestInitAndGet(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if Get() == nil {
		t.Fatal("Get() returned nil after Init")
	}
}

func TestNamed(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	l := Named("store")
	if l == nil {
		t.Fatal("Named() returned nil")
	}
	l.Info(context.Background(), "named logger works", String("backend", "memory"))
}

func TestFieldConstructors(t *testing.T) {
	if f := String("k", "v"); f.Key != "k" || f.Value != "v" {
		t.Errorf("String() = %+v", f)
	}
	if f := Int("n", 7); f.Key != "n" || f.Value != 7 {
		t.Errorf("Int() = %+v", f)
	}
	if f := Any("x", []int{1}); f.Key != "x" {
		t.Errorf("Any() = %+v", f)
	}
	err := errors.New("boom")
	if f := Error(err); f.Key != "error" || f.Value != err {
		t.Errorf("Error() = %+v", f)
	}
}

func TestSetLevelString(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	for _, lvl := range []string{"debug", "info", "warn", "warning", "error", "DEBUG", ""} {
		if err := SetLevelString(lvl); err != nil {
			t.Errorf("SetLevelString(%q) error = %v", lvl, err)
		}
	}
	if err := SetLevelString("verbose"); err == nil {
		t.Error("SetLevelString(verbose) expected error")
	}
	SetLevel(slog.LevelInfo)
}

func TestSync(t *testing.T) {
	if err := Sync(); err != nil {
		t.Errorf("Sync() error = %v", err)
	}
}

func TestLogLevels(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	ctx := context.Background()
	l := Get()
	l.Debug(ctx, "debug message")
	l.Info(ctx, "info message", Int("players", 8))
	l.Warn(ctx, "warn message")
	l.Error(ctx, "error message", Error(errors.New("boom")))
}
