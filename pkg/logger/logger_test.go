package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(&Config{Level: "loud", Format: "json", Output: "stdout"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestFileOutputWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, err := New(&Config{Level: "info", Format: "json", Output: path, MaxSizeMB: 1})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	l.Info("quote tick", String("market", "lbma"), Int("count", 6), Error(errors.New("boom")))

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	out := string(b)
	for _, want := range []string{`"message":"quote tick"`, `"market":"lbma"`, `"count":6`, `"error":"boom"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}
}

func TestFieldKeyValues(t *testing.T) {
	k, v := Duration("elapsed", 1500_000_000).GetKeyValue()
	if k != "elapsed" || v.(int) != 1500 {
		t.Fatalf("unexpected duration field %s=%v", k, v)
	}
	k, v = Strings("symbols", []string{"a", "b"}).GetKeyValue()
	if k != "symbols" || v.(string) != "a, b" {
		t.Fatalf("unexpected strings field %s=%v", k, v)
	}
}
