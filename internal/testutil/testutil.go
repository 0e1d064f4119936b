// Package testutil provides helpers shared by package tests.
package testutil

import (
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// NewTestLogger creates a test logger that outputs to t.Log.
func NewTestLogger(t *testing.T) zerolog.Logger {
	t.Helper()
	return zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
}

// NopLogger returns a no-op logger for tests that don't need output.
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// Event is a message captured by Recorder.
type Event struct {
	Type    string
	Payload any
}

// ErrBroadcastFailed is returned by a Recorder with Fail set.
var ErrBroadcastFailed = errors.New("broadcast failed")

// Recorder captures broadcast events in order. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	Fail   bool
}

// Broadcast records the event.
func (r *Recorder) Broadcast(msgType string, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Type: msgType, Payload: payload})
	if r.Fail {
		return ErrBroadcastFailed
	}
	return nil
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the recorded event types in order.
func (r *Recorder) Types() []string {
	events := r.Events()
	types := make([]string, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}

// StringPtr returns a pointer to a string.
func StringPtr(s string) *string {
	return &s
}

// IntPtr returns a pointer to an int.
func IntPtr(i int) *int {
	return &i
}

// BoolPtr returns a pointer to a bool.
func BoolPtr(b bool) *bool {
	return &b
}

// StringsPtr returns a pointer to a string slice.
func StringsPtr(s ...string) *[]string {
	if s == nil {
		s = []string{}
	}
	return &s
}
