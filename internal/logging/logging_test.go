package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("disabled logger writes nothing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "icheckout.log")
		logger, closer, err := New(Options{Enabled: false, Path: path})
		if err != nil {
			t.Fatal(err)
		}
		logger.Debug("git", "args", []string{"stash", "list"})
		if err := closer.Close(); err != nil {
			t.Fatal(err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("log file should not exist, stat err = %v", err)
		}
	})

	t.Run("enabled without path is a no-op", func(t *testing.T) {
		logger, closer, err := New(Options{Enabled: true})
		if err != nil {
			t.Fatal(err)
		}
		logger.Debug("git")
		closer.Close()
	})

	t.Run("enabled logger writes debug records", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "icheckout.log")
		logger, closer, err := New(Options{Enabled: true, Path: path, MaxSizeMB: 1, MaxBackups: 1})
		if err != nil {
			t.Fatal(err)
		}
		logger.Debug("step", "name", "locate")
		if err := closer.Close(); err != nil {
			t.Fatal(err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "msg=step") || !strings.Contains(string(data), "name=locate") {
			t.Errorf("log = %q, want step record", string(data))
		}
	})
}
