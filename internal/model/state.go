package model

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/QuantumPhantom09/MeloTTS-Render/internal/backend"
)

// Status is the loading status of the service's model.
type Status string

const (
	// StatusUnloaded indicates that loading has not started yet.
	StatusUnloaded Status = "unloaded"

	// StatusLoading indicates that the model is being loaded.
	StatusLoading Status = "loading"

	// StatusLoaded indicates that the model is ready to serve.
	StatusLoaded Status = "loaded"

	// StatusFailed indicates that the model failed to load. Sticky for the
	// process lifetime.
	StatusFailed Status = "failed"
)

// Handle is the loaded model: the engine plus its fixed audio format.
// Immutable once stored in the holder.
type Handle struct {
	Engine     backend.Engine
	SampleRate int
	Channels   int
	Language   string
	Device     string
	LoadedAt   time.Time
}

// Snapshot is a point-in-time view of the holder. Copies are safe to keep.
type Snapshot struct {
	Status Status
	Handle *Handle // non-nil iff Status == StatusLoaded
	Error  string  // non-empty iff Status == StatusFailed
}

// Loader constructs the model handle.
type Loader func(ctx context.Context) (*Handle, error)

// Holder is the process-wide model state cell. Transitions are monotonic:
// unloaded -> loading -> {loaded | failed}, written exactly once by
// Initialize and never reverted. Request handlers only read.
type Holder struct {
	mu   sync.RWMutex
	snap Snapshot
	once sync.Once
}

// NewHolder creates a holder in the unloaded state.
func NewHolder() *Holder {
	return &Holder{snap: Snapshot{Status: StatusUnloaded}}
}

// Initialize runs the loader exactly once; subsequent calls are no-ops.
// It never raises past its own boundary: errors and panics from the loader
// are recorded as a failed load.
func (h *Holder) Initialize(ctx context.Context, load Loader) {
	h.once.Do(func() {
		h.set(Snapshot{Status: StatusLoading})

		handle, err := runLoader(ctx, load)
		if err != nil {
			slog.Error("Model failed to load", "error", err)
			h.set(Snapshot{Status: StatusFailed, Error: err.Error()})
			return
		}

		slog.Info("Model loaded successfully",
			"engine", handle.Engine.Name(),
			"device", handle.Device,
			"sample_rate", handle.SampleRate,
		)
		h.set(Snapshot{Status: StatusLoaded, Handle: handle})
	})
}

// Current returns the current snapshot. Pure read, safe to call concurrently
// from any number of requests.
func (h *Holder) Current() Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.snap
}

func (h *Holder) set(snap Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.snap = snap
}

func runLoader(ctx context.Context, load Loader) (handle *Handle, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("model loader panic: %v", r)
		}
	}()

	return load(ctx)
}
