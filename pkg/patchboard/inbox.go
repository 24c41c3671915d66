package patchboard

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Message is one parseable inbox entry: where it lives on disk and the
// decoded envelope object. Deleting the file after acting on it is the
// consumer's responsibility.
type Message struct {
	Path     string
	Envelope map[string]any
}

// Scan lists inboxDir and returns every *.json entry that parses as a
// JSON object, in lexicographic filename order.
//
// A missing directory or a listing failure yields nil, not an error.
// Entries that cannot be read or do not parse are skipped and left on
// disk: they may be mid-write (the emitter does not stage through a
// rename), so a later scan retries them. Parsed values that are not
// objects are skipped too.
func Scan(inboxDir string) []Message {
	entries, err := os.ReadDir(inboxDir)
	if err != nil {
		return nil
	}

	var messages []Message
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(inboxDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			continue // possibly incomplete, retry next scan
		}
		env, ok := v.(map[string]any)
		if !ok {
			continue
		}
		messages = append(messages, Message{Path: path, Envelope: env})
	}

	return messages
}

// IsTextMessage reports whether env is a message on the "text" channel
// whose signal is a string. The empty string qualifies; null, objects,
// and arrays do not.
func IsTextMessage(env map[string]any) bool {
	if env == nil {
		return false
	}
	if ch, ok := env["channel"].(string); !ok || ch != "text" {
		return false
	}
	_, ok := env["signal"].(string)
	return ok
}
