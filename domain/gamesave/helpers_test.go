package gamesave_test

import (
	"sync"

	"github.com/go-monolith/mono/pkg/types"

	"github.com/example/game-save-demo/domain/gamesave"
)

// recordingLogger implements types.Logger and keeps every entry.
type recordingLogger struct {
	mu      sync.Mutex
	entries *[]logEntry
}

type logEntry struct {
	level string
	msg   string
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{entries: &[]logEntry{}}
}

func (l *recordingLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.entries = append(*l.entries, logEntry{level: level, msg: msg})
}

func (l *recordingLogger) Debug(msg string, _ ...any) { l.add("debug", msg) }
func (l *recordingLogger) Info(msg string, _ ...any)  { l.add("info", msg) }
func (l *recordingLogger) Warn(msg string, _ ...any)  { l.add("warn", msg) }
func (l *recordingLogger) Error(msg string, _ ...any) { l.add("error", msg) }
func (l *recordingLogger) With(_ ...any) types.Logger { return l }
func (l *recordingLogger) WithModule(_ string) types.Logger {
	return l
}
func (l *recordingLogger) WithError(_ error) types.Logger {
	return l
}

func (l *recordingLogger) count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range *l.entries {
		if e.level == level {
			n++
		}
	}
	return n
}

// sample covers every supported type plus one unsupported field.
// Scratch is transient and therefore not listed in Fields.
type sample struct {
	Health  int16
	Score   int32
	Ticks   int64
	Port    uint16
	Seed    uint32
	Mask    uint64
	Speed   float32
	Ratio   float64
	Alive   bool
	Name    string
	Tags    []string
	Scratch int
}

func (s *sample) Fields() []gamesave.Field {
	return []gamesave.Field{
		{Name: "Health", Type: gamesave.TypeInt16, Ptr: &s.Health},
		{Name: "Score", Type: gamesave.TypeInt32, Ptr: &s.Score},
		{Name: "Ticks", Type: gamesave.TypeInt64, Ptr: &s.Ticks},
		{Name: "Port", Type: gamesave.TypeUint16, Ptr: &s.Port},
		{Name: "Seed", Type: gamesave.TypeUint32, Ptr: &s.Seed},
		{Name: "Mask", Type: gamesave.TypeUint64, Ptr: &s.Mask},
		{Name: "Speed", Type: gamesave.TypeFloat32, Ptr: &s.Speed},
		{Name: "Ratio", Type: gamesave.TypeFloat64, Ptr: &s.Ratio},
		{Name: "Alive", Type: gamesave.TypeBool, Ptr: &s.Alive},
		{Name: "Name", Type: gamesave.TypeText, Ptr: &s.Name},
		{Name: "Tags", Type: gamesave.TypeUnsupported, Ptr: &s.Tags},
	}
}

// scoreOnly mirrors a schema with a single int32 field.
type scoreOnly struct {
	Score int32
}

func (s *scoreOnly) Fields() []gamesave.Field {
	return []gamesave.Field{{Name: "Score", Type: gamesave.TypeInt32, Ptr: &s.Score}}
}

type fieldList []gamesave.Field

func (f fieldList) Fields() []gamesave.Field { return f }
