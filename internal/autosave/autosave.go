package autosave

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"time"

	"signature-builder/internal/editor"
	"signature-builder/internal/worker"

	"github.com/bep/debounce"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Status is the transient save indicator shown to the user.
type Status string

const (
	StatusIdle   Status = "idle"
	StatusSaving Status = "saving"
	StatusSaved  Status = "saved"
)

const localWriteTimeout = 5 * time.Second

// LocalSink is the durable store every flush writes to.
type LocalSink interface {
	Save(ctx context.Context, key string, payload []byte) error
}

// RemoteSink is the best-effort store written at most once per interval.
type RemoteSink interface {
	Save(ctx context.Context, payload []byte) error
}

// Submitter runs remote writes off the flush path.
type Submitter interface {
	Submit(t worker.Task) bool
}

type Options struct {
	Debounce       time.Duration
	RemoteInterval time.Duration
	StatusWindow   time.Duration
}

func DefaultOptions() Options {
	return Options{
		Debounce:       500 * time.Millisecond,
		RemoteInterval: 10 * time.Second,
		StatusWindow:   2 * time.Second,
	}
}

// Autosaver persists the latest observed document after a quiet period.
// Remote may be nil, meaning there is no signed-in owner to sync to.
type Autosaver struct {
	key    string
	local  LocalSink
	remote RemoteSink
	pool   Submitter

	debounced    func(f func())
	limiter      *rate.Limiter
	statusWindow time.Duration

	// flushMu is held for the duration of a flush; Close takes it to wait
	// out one in progress.
	flushMu sync.Mutex

	mu          sync.Mutex
	content     []byte
	payload     []byte
	status      Status
	generation  uint64
	statusTimer *time.Timer
	closed      bool
}

func New(key string, local LocalSink, remote RemoteSink, pool Submitter, opts Options) *Autosaver {
	return &Autosaver{
		key:          key,
		local:        local,
		remote:       remote,
		pool:         pool,
		debounced:    debounce.New(opts.Debounce),
		limiter:      rate.NewLimiter(rate.Every(opts.RemoteInterval), 1),
		statusWindow: opts.StatusWindow,
		status:       StatusIdle,
	}
}

// content is the part of a snapshot whose changes trigger a save.
type content struct {
	Rows         []editor.Row        `json:"rows"`
	GlobalStyles editor.GlobalStyles `json:"globalStyles"`
}

// Observe records s as the state to persist. A change to rows or global
// styles restarts the debounce timer; a selection-only change just updates
// the pending payload.
func (a *Autosaver) Observe(s editor.Snapshot) {
	c, err := json.Marshal(content{Rows: s.Rows, GlobalStyles: s.GlobalStyles})
	if err != nil {
		log.Error().Err(err).Str("key", a.key).Msg("autosave: encode content")
		return
	}
	payload, err := editor.EncodeSnapshot(s)
	if err != nil {
		log.Error().Err(err).Str("key", a.key).Msg("autosave: encode snapshot")
		return
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.payload = payload
	changed := !bytes.Equal(c, a.content)
	a.content = c
	a.mu.Unlock()

	if changed {
		a.debounced(a.flush)
	}
}

// Prime sets the baseline content without scheduling a save, so that the
// document a session was restored from is not written straight back.
func (a *Autosaver) Prime(s editor.Snapshot) {
	c, err := json.Marshal(content{Rows: s.Rows, GlobalStyles: s.GlobalStyles})
	if err != nil {
		return
	}
	a.mu.Lock()
	a.content = c
	a.mu.Unlock()
}

func (a *Autosaver) flush() {
	a.flushMu.Lock()
	defer a.flushMu.Unlock()

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	payload := a.payload
	a.setStatusLocked(StatusSaving)
	a.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), localWriteTimeout)
	if err := a.local.Save(ctx, a.key, payload); err != nil {
		log.Error().Err(err).Str("key", a.key).Msg("autosave: local write failed")
	}
	cancel()

	if a.remote != nil && !a.isClosed() && a.limiter.Allow() {
		a.saveRemote(payload)
	}

	a.mu.Lock()
	if !a.closed {
		a.setStatusLocked(StatusSaved)
		a.scheduleIdleLocked()
	}
	a.mu.Unlock()
}

func (a *Autosaver) saveRemote(payload []byte) {
	task := func(ctx context.Context) error {
		if err := a.remote.Save(ctx, payload); err != nil {
			log.Warn().Err(err).Str("key", a.key).Msg("autosave: remote write failed")
		}
		return nil
	}
	if a.pool == nil {
		go task(context.Background())
		return
	}
	if !a.pool.Submit(task) {
		log.Debug().Str("key", a.key).Msg("autosave: remote write skipped")
	}
}

func (a *Autosaver) setStatusLocked(s Status) {
	a.status = s
	a.generation++
	if a.statusTimer != nil {
		a.statusTimer.Stop()
		a.statusTimer = nil
	}
}

func (a *Autosaver) scheduleIdleLocked() {
	gen := a.generation
	a.statusTimer = time.AfterFunc(a.statusWindow, func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if a.generation == gen {
			a.status = StatusIdle
		}
	})
}

func (a *Autosaver) isClosed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed
}

// Status reports the current save indicator.
func (a *Autosaver) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

// Close cancels any pending save and waits for a flush already running to
// finish its local write; that flush skips the remote write. Observe is a
// no-op afterwards.
func (a *Autosaver) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	if a.statusTimer != nil {
		a.statusTimer.Stop()
	}
	a.mu.Unlock()

	// The pending timer still fires, but runs the no-op instead of flush.
	a.debounced(func() {})

	a.flushMu.Lock()
	a.flushMu.Unlock()
}
