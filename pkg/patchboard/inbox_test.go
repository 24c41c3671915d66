package patchboard_test

import (
	"os"
	"path/filepath"
	"testing"

	"filetalk/pkg/patchboard"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScanNonexistentDirectory(t *testing.T) {
	t.Parallel()

	if got := patchboard.Scan(filepath.Join(t.TempDir(), "nope")); got != nil {
		t.Errorf("Scan = %v, want nil", got)
	}
}

func TestScanEmptyDirectory(t *testing.T) {
	t.Parallel()

	if got := patchboard.Scan(t.TempDir()); len(got) != 0 {
		t.Errorf("Scan = %v, want empty", got)
	}
}

func TestScanValidObject(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "msg.json", `{"channel":"text","timestamp":"123","signal":"hello"}`)

	got := patchboard.Scan(dir)
	if len(got) != 1 {
		t.Fatalf("Scan returned %d messages, want 1", len(got))
	}
	if filepath.Base(got[0].Path) != "msg.json" {
		t.Errorf("path = %q", got[0].Path)
	}
	if got[0].Envelope["signal"] != "hello" {
		t.Errorf("envelope = %#v", got[0].Envelope)
	}
}

func TestScanSkipsNonCandidates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"wrong extension", "readme.txt", "hello"},
		{"truncated JSON", "partial.json", `{"channel": "text"`},
		{"array", "array.json", `[1, 2, 3]`},
		{"scalar", "scalar.json", `"just a string"`},
		{"null", "null.json", `null`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			path := writeFile(t, dir, tt.file, tt.content)

			if got := patchboard.Scan(dir); len(got) != 0 {
				t.Errorf("Scan = %v, want nothing", got)
			}
			// Skipped entries stay on disk for a later retry.
			if _, err := os.Stat(path); err != nil {
				t.Errorf("skipped file was removed: %v", err)
			}
		})
	}
}

func TestScanLexicographicOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.json", "c.json"} {
		writeFile(t, dir, name, `{"channel":"x"}`)
	}

	got := patchboard.Scan(dir)
	if len(got) != 3 {
		t.Fatalf("Scan returned %d messages, want 3", len(got))
	}
	want := []string{"a.json", "b.json", "c.json"}
	for i, m := range got {
		if filepath.Base(m.Path) != want[i] {
			t.Errorf("position %d: %q, want %q", i, filepath.Base(m.Path), want[i])
		}
	}
}

func TestScanBadEntryDoesNotBlockOthers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.json", `{bad`)
	writeFile(t, dir, "good.json", `{"channel":"text","timestamp":"1","signal":"ok"}`)

	got := patchboard.Scan(dir)
	if len(got) != 1 || filepath.Base(got[0].Path) != "good.json" {
		t.Fatalf("Scan = %v, want only good.json", got)
	}
	if _, err := os.Stat(bad); err != nil {
		t.Errorf("truncated file no longer on disk: %v", err)
	}
}

func TestIsTextMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		env  map[string]any
		want bool
	}{
		{"valid", map[string]any{"channel": "text", "signal": "hello", "timestamp": "1"}, true},
		{"empty string signal", map[string]any{"channel": "text", "signal": ""}, true},
		{"wrong channel", map[string]any{"channel": "other", "signal": "hello"}, false},
		{"signal is object", map[string]any{"channel": "text", "signal": map[string]any{"k": "v"}}, false},
		{"signal is null", map[string]any{"channel": "text", "signal": nil}, false},
		{"signal is array", map[string]any{"channel": "text", "signal": []any{"a"}}, false},
		{"signal missing", map[string]any{"channel": "text"}, false},
		{"empty envelope", map[string]any{}, false},
		{"nil envelope", nil, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := patchboard.IsTextMessage(tt.env); got != tt.want {
				t.Errorf("IsTextMessage(%#v) = %v, want %v", tt.env, got, tt.want)
			}
		})
	}
}
