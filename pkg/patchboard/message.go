// Package patchboard implements the file-based message transport: building
// message envelopes, emitting them into an outbox directory, and scanning
// an inbox directory for messages from other components.
//
// The transport is deliberately minimal. A message is one JSON file named
// <uuid>.json; delivery means "the file exists and parses". There is no
// acknowledgement, no ordering beyond lexicographic listing, and no
// coordination between writers. The package assumes a single writer per
// outbox and a single consumer per inbox.
package patchboard

import (
	"fmt"
	"strconv"
	"time"
)

// Envelope is the wire form of one message: the channel it is addressed
// to, the emission time, and the payload. Timestamp is the decimal string
// rendering of seconds since epoch (fractional seconds permitted); it is
// persisted as-is and interpreting it is the receiver's business.
type Envelope struct {
	Channel   string `json:"channel"`
	Timestamp string `json:"timestamp"`
	Signal    any    `json:"signal"`
}

// NewEnvelope wraps a signal for the given channel, stamped with the
// current time.
func NewEnvelope(signal any, channel string) Envelope {
	sec := float64(time.Now().UnixNano()) / 1e9
	return Envelope{
		Channel:   channel,
		Timestamp: strconv.FormatFloat(sec, 'f', -1, 64),
		Signal:    signal,
	}
}

// EmitError reports a failure to create the outbox directory or write the
// message file. Op names the failed step, Path the directory or file.
type EmitError struct {
	Op   string
	Path string
	Err  error
}

func (e *EmitError) Error() string {
	return fmt.Sprintf("cannot %s '%s': %v", e.Op, e.Path, e.Err)
}

func (e *EmitError) Unwrap() error { return e.Err }
