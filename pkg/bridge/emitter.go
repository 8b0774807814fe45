package bridge

import (
	"errors"
	"sync"
)

var ErrNotConnected = errors.New("bridge not connected")

// Emitter sends outbound intents to the host.
type Emitter interface {
	Emit(event string, args ...any) error
}

func UseItem(e Emitter, slot int) error { return e.Emit(EventUseItem, slot) }

func DropItem(e Emitter, slot int) error { return e.Emit(EventDropItem, slot) }

func Close(e Emitter) error { return e.Emit(EventClose) }

// Recorder is an Emitter that keeps every frame in memory.
type Recorder struct {
	mu     sync.Mutex
	frames []Frame
	Err    error // returned from Emit after recording, when set
}

func (r *Recorder) Emit(event string, args ...any) error {
	f, err := NewFrame(event, args...)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.frames = append(r.frames, f)
	r.mu.Unlock()
	return r.Err
}

// Frames returns a copy of the recorded frames.
func (r *Recorder) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Frame(nil), r.frames...)
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.frames = nil
	r.mu.Unlock()
}
