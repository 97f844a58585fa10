package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/todos"
)

// ErrMissingProvider is the panic cause when a channel is requested from a
// context carrying no Provider.
var ErrMissingProvider = errors.New("store: missing provider")

// Updater groups the three mutation handles. The funcs are built once per
// Provider and never replaced.
type Updater struct {
	Add    func(title string) int
	Update func(it model.Item)
	Remove func(id int)
}

// Provider shares one Engine between consumers. Reads and mutations are
// exposed separately: State/Subscribe for the collection, Updater for edits.
type Provider struct {
	mu      sync.Mutex
	engine  *todos.Engine
	updater *Updater
	subs    map[int]func([]model.Item)
	nextSub int
	log     zerolog.Logger
}

// NewProvider seeds a Provider. floor is the lowest id Add may assign.
func NewProvider(seed []model.Item, floor int, log zerolog.Logger) *Provider {
	p := &Provider{
		engine: todos.New(seed, floor),
		subs:   map[int]func([]model.Item){},
		log:    log,
	}
	p.updater = &Updater{
		Add:    p.add,
		Update: p.update,
		Remove: p.remove,
	}
	return p
}

// State returns the current collection. Treat it as read-only.
func (p *Provider) State() []model.Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.engine.Items()
}

// Updater returns the mutation handles; the pointer is the same for the
// lifetime of p.
func (p *Provider) Updater() *Updater { return p.updater }

// Subscribe registers fn to be called with the new collection each time an
// edit changes it. No-op edits do not notify.
func (p *Provider) Subscribe(fn func([]model.Item)) (unsubscribe func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subs, id)
	}
}

func (p *Provider) add(title string) int {
	var id int
	p.apply(func(e *todos.Engine) []model.Item {
		var items []model.Item
		items, id = e.Add(title)
		return items
	})
	p.log.Debug().Int("id", id).Msg("todo added")
	return id
}

func (p *Provider) update(it model.Item) {
	p.apply(func(e *todos.Engine) []model.Item { return e.Update(it) })
	p.log.Debug().Int("id", it.ID).Msg("todo updated")
}

func (p *Provider) remove(id int) {
	p.apply(func(e *todos.Engine) []model.Item { return e.Remove(id) })
	p.log.Debug().Int("id", id).Msg("todo removed")
}

// apply runs op and notifies subscribers outside the lock when the
// collection value changed.
func (p *Provider) apply(op func(*todos.Engine) []model.Item) {
	p.mu.Lock()
	before := p.engine.Items()
	after := op(p.engine)
	if sameCollection(before, after) {
		p.mu.Unlock()
		return
	}
	subs := make([]func([]model.Item), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	p.mu.Unlock()

	for _, fn := range subs {
		fn(after)
	}
}

// sameCollection reports whether the engine handed back the very slice it
// held before, which is how it signals a no-op.
func sameCollection(a, b []model.Item) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}

type ctxKey struct{}

// WithProvider returns a context in which StateFrom and UpdaterFrom resolve to p.
func WithProvider(ctx context.Context, p *Provider) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// ProviderFrom returns the Provider in scope, or nil.
func ProviderFrom(ctx context.Context) *Provider {
	p, _ := ctx.Value(ctxKey{}).(*Provider)
	return p
}

// StateFrom returns the collection of the Provider in scope.
// It panics when ctx carries no Provider.
func StateFrom(ctx context.Context) []model.Item {
	return mustProvider(ctx, "StateFrom").State()
}

// UpdaterFrom returns the mutation handles of the Provider in scope.
// It panics when ctx carries no Provider.
func UpdaterFrom(ctx context.Context) *Updater {
	return mustProvider(ctx, "UpdaterFrom").Updater()
}

func mustProvider(ctx context.Context, caller string) *Provider {
	p := ProviderFrom(ctx)
	if p == nil {
		panic(fmt.Errorf("%s must be used within a scope created by WithProvider: %w", caller, ErrMissingProvider))
	}
	return p
}
