package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/kanban/pkg/config"
	"github.com/charmbracelet/log"
)

func TestGoodNewLogger(t *testing.T) {
	for _, c := range []*config.Config{
		config.DefaultConfig(),
		{},
		{Log: config.LogConfig{Path: filepath.Join(t.TempDir(), "logfile.txt")}},
	} {
		_, f, err := NewLogger(c)
		if err != nil {
			t.Errorf("NewLogger(%v) => _, _, %v, want _, _, nil", c, err)
		}
		if f != nil {
			f.Close()
		}
	}
}

func TestBadNewLogger(t *testing.T) {
	for _, c := range []*config.Config{
		nil,
		{Log: config.LogConfig{Path: "\x00"}},
	} {
		_, f, err := NewLogger(c)
		if err == nil {
			t.Errorf("NewLogger(%v) => _, _, nil, want _, _, %v", c, err)
		}
		if f != nil {
			f.Close()
		}
	}
}

func TestLogToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kanban.log")
	logger, f, err := NewLogger(&config.Config{Log: config.LogConfig{Path: path, Format: "logfmt"}})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hello", "user", "alice")
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	bts, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(bts), "user=alice") {
		t.Errorf("log file = %q, want it to contain user=alice", bts)
	}
}

func TestFormatter(t *testing.T) {
	cases := map[string]log.Formatter{
		"json":   log.JSONFormatter,
		"LOGFMT": log.LogfmtFormatter,
		"text":   log.TextFormatter,
		"":       log.TextFormatter,
		"xml":    log.TextFormatter,
	}
	for in, want := range cases {
		if got := Formatter(in); got != want {
			t.Errorf("Formatter(%q) = %v, want %v", in, got, want)
		}
	}
}
