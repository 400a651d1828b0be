package logs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"miniroom/common/config"
)

func TestError(t *testing.T) {
	var buf bytes.Buffer
	logger = log.New(&buf)
	Error("test:%v", 10)
	if !strings.Contains(buf.String(), "test:10") {
		t.Fatalf("want formatted message, got %q", buf.String())
	}
}

func TestDebugBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger = log.New(&buf)
	logger.SetLevel(log.InfoLevel)
	Debug("hidden %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("debug should be filtered at info level, got %q", buf.String())
	}
	Warn("plain")
	if !strings.Contains(buf.String(), "plain") {
		t.Fatalf("want plain message, got %q", buf.String())
	}
}

func TestInitLogLevel(t *testing.T) {
	old := config.Conf
	defer func() { config.Conf = old }()
	tests := []struct {
		level string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"warn", log.WarnLevel},
		{"verbose", log.InfoLevel},
		{"", log.InfoLevel},
	}
	for _, tt := range tests {
		config.Conf = &config.Config{Log: config.LogConf{Level: tt.level}}
		InitLog("miniroom")
		if got := logger.GetLevel(); got != tt.want {
			t.Fatalf("level %q = %v, want %v", tt.level, got, tt.want)
		}
	}
}
