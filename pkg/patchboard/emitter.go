package patchboard

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Emit wraps signal in a fresh envelope and writes it into outboxDir as
// <uuid>.json, creating the directory if needed. It returns the written
// filename (basename only).
//
// The file is written directly under its final name, no temp-file-and-
// rename staging. A reader racing the write may observe a partial file;
// the inbox scanner's skip-and-retry policy tolerates that.
func Emit(signal any, channel, outboxDir string) (string, error) {
	return WriteMessage(NewEnvelope(signal, channel), outboxDir)
}

// WriteMessage persists an already-built envelope into outboxDir.
func WriteMessage(env Envelope, outboxDir string) (string, error) {
	if err := os.MkdirAll(outboxDir, 0o755); err != nil {
		return "", &EmitError{Op: "create OUTBOX directory", Path: outboxDir, Err: err}
	}

	filename := uuid.New().String() + ".json"
	path := filepath.Join(outboxDir, filename)

	// Serialize up front so a marshal failure never touches the disk.
	// HTML escaping is off: message text is preserved verbatim.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(env); err != nil {
		return "", &EmitError{Op: "encode message for", Path: path, Err: err}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", &EmitError{Op: "write file", Path: path, Err: err}
	}

	return filename, nil
}
