package fetch

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrTornDown is reported when a read is started on a machine whose owner
// has gone away.
var ErrTornDown = errors.New("fetch: machine torn down")

// Loader performs the single asynchronous read of an activation.
type Loader[T any] func(ctx context.Context) (T, error)

// Ticket identifies one started read. Completions are only applied when
// they carry the ticket of the current generation.
type Ticket struct {
	Gen       uint64
	RequestID string
	Ctx       context.Context
}

// Machine drives State transitions for one owner. It is safe to complete a
// ticket from another goroutine.
type Machine[T any] struct {
	mu     sync.Mutex
	state  State[T]
	gen    uint64
	alive  bool
	cancel context.CancelFunc
	log    zerolog.Logger
}

func NewMachine[T any](log zerolog.Logger) *Machine[T] {
	return &Machine[T]{alive: true, log: log}
}

// State returns the current state.
func (m *Machine[T]) State() State[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Begin issues Start and returns the ticket the read must complete with.
// The ticket context is cancelled by Cancel and Teardown.
// ok is false when a read is already in flight.
func (m *Machine[T]) Begin(ctx context.Context) (t Ticket, ok bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.alive {
		return Ticket{}, false, ErrTornDown
	}
	if m.state.Status() == Loading {
		return Ticket{}, false, nil
	}

	m.gen++
	m.state = Reduce(m.state, Start{})
	lctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	t = Ticket{Gen: m.gen, RequestID: uuid.NewString(), Ctx: lctx}
	m.log.Debug().Str("request_id", t.RequestID).Uint64("gen", t.Gen).Msg("fetch started")
	return t, true, nil
}

// Complete applies the outcome of the read identified by t. Results for a
// superseded ticket, or arriving after Teardown, are dropped. It reports
// whether the state changed.
func (m *Machine[T]) Complete(t Ticket, data T, err error) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.alive {
		m.log.Debug().Str("request_id", t.RequestID).Msg("fetch result dropped: owner gone")
		return false
	}
	if t.Gen != m.gen {
		m.log.Debug().Str("request_id", t.RequestID).
			Uint64("gen", t.Gen).Uint64("current_gen", m.gen).
			Msg("fetch result dropped: stale")
		return false
	}

	var sig Signal = Succeeded[T]{Data: data}
	if err != nil {
		sig = Failed{Err: err}
	}
	next := Reduce(m.state, sig)
	changed := next.Status() != m.state.Status()
	m.state = next
	m.release()

	if err != nil {
		m.log.Warn().Err(err).Str("request_id", t.RequestID).Msg("fetch failed")
	} else {
		m.log.Debug().Str("request_id", t.RequestID).Msg("fetch completed")
	}
	return changed
}

// Cancel abandons the in-flight read and returns to idle. The loader's
// context is cancelled; its result, if it still arrives, is ignored.
func (m *Machine[T]) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Status() != Loading {
		return
	}
	m.state = Reduce(m.state, Cancel{})
	m.gen++
	m.release()
	m.log.Debug().Msg("fetch cancelled")
}

// Teardown marks the owner as gone. Later completions are suppressed and
// Begin fails with ErrTornDown.
func (m *Machine[T]) Teardown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.alive {
		return
	}
	m.alive = false
	m.release()
}

// Run performs one complete activation synchronously: Begin, load, Complete.
func (m *Machine[T]) Run(ctx context.Context, load Loader[T]) (State[T], error) {
	t, ok, err := m.Begin(ctx)
	if err != nil {
		return m.State(), err
	}
	if !ok {
		return m.State(), nil
	}
	data, lerr := load(t.Ctx)
	m.Complete(t, data, lerr)
	return m.State(), nil
}

func (m *Machine[T]) release() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}
