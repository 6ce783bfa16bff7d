// Package testlog provides an in-memory logx.Logger for assertions in tests.
package testlog

import (
	"sync"

	"fleet-scheduler/internal/logx"
)

// Entry is one recorded log call.
type Entry struct {
	Level  string
	Msg    string
	Fields []logx.Field
}

// Field returns the value of the last field named key.
func (e Entry) Field(key string) (any, bool) {
	for i := len(e.Fields) - 1; i >= 0; i-- {
		if e.Fields[i].Key == key {
			return e.Fields[i].Value, true
		}
	}
	return nil, false
}

// Recorder collects entries from every logger it hands out.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// New returns an empty recorder.
func New() *Recorder { return &Recorder{} }

// Logger returns a logger writing into r.
func (r *Recorder) Logger() logx.Logger {
	return recording{r: r}
}

// Entries returns a copy of the recorded entries.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Find returns the first entry with the given message.
func (r *Recorder) Find(msg string) (Entry, bool) {
	for _, e := range r.Entries() {
		if e.Msg == msg {
			return e, true
		}
	}
	return Entry{}, false
}

// Count returns how many entries were recorded at level.
func (r *Recorder) Count(level string) int {
	n := 0
	for _, e := range r.Entries() {
		if e.Level == level {
			n++
		}
	}
	return n
}

func (r *Recorder) add(level, msg string, fields []logx.Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Msg: msg, Fields: append([]logx.Field(nil), fields...)})
}

type recording struct {
	r    *Recorder
	base []logx.Field
}

func (l recording) Debug(msg string, f ...logx.Field) { l.r.add("debug", msg, l.merge(f)) }
func (l recording) Info(msg string, f ...logx.Field)  { l.r.add("info", msg, l.merge(f)) }
func (l recording) Warn(msg string, f ...logx.Field)  { l.r.add("warn", msg, l.merge(f)) }
func (l recording) Error(msg string, f ...logx.Field) { l.r.add("error", msg, l.merge(f)) }

func (l recording) With(f ...logx.Field) logx.Logger {
	return recording{r: l.r, base: l.merge(f)}
}

func (l recording) Sync() error { return nil }

func (l recording) merge(f []logx.Field) []logx.Field {
	out := make([]logx.Field, 0, len(l.base)+len(f))
	out = append(out, l.base...)
	return append(out, f...)
}

var _ logx.Logger = recording{}
