package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/cloudmux/internal/config"
)

func TestNewLogger_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	cfg := config.DefaultConfig()
	cfg.LogFile = path
	cfg.ColorMode = config.ColorNever

	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatalf("NewLogger() = %v", err)
	}
	l.Info("submitted job %s", "123")
	l.Warn("probe fell back to defaults")
	if err := l.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() = %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "submitted job 123") {
		t.Errorf("log file missing info line:\n%s", out)
	}
	if !strings.Contains(out, "probe fell back to defaults") {
		t.Errorf("log file missing warn line:\n%s", out)
	}
}

func TestDebug_SuppressedWhenNotVerbose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	cfg := config.DefaultConfig()
	cfg.LogFile = path
	cfg.ColorMode = config.ColorNever

	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatalf("NewLogger() = %v", err)
	}
	l.Debug(false, "hidden detail")
	l.Close()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden detail") {
		t.Error("Debug(false, ...) should not log")
	}
}

func TestNewLogger_FileSinkDisablesAutoColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	cfg := config.DefaultConfig()
	cfg.LogFile = path
	cfg.ColorMode = config.ColorAuto

	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatalf("NewLogger() = %v", err)
	}
	defer l.Close()
	if l.ColorsEnabled() {
		t.Error("auto color should be off with a file sink")
	}
}
