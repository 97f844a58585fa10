package store

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/todos"
)

func newProvider() *Provider {
	return NewProvider([]model.Item{
		{ID: 0, Title: "A", Completed: true},
		{ID: 1, Title: "B"},
	}, todos.DefaultIDFloor, zerolog.Nop())
}

func TestUpdaterIsStable(t *testing.T) {
	p := newProvider()
	u := p.Updater()

	u.Add("C")
	u.Remove(0)

	assert.Same(t, u, p.Updater())
	assert.Len(t, p.State(), 2)
}

func TestSubscribersSeeChangesOnly(t *testing.T) {
	p := newProvider()
	var calls [][]model.Item
	unsub := p.Subscribe(func(items []model.Item) { calls = append(calls, items) })

	u := p.Updater()
	id := u.Add("C")
	u.Update(model.Item{ID: 1, Title: "B2", Completed: true})
	// unknown ids and identical values do not notify
	u.Remove(999)
	u.Update(model.Item{ID: 999})
	u.Update(model.Item{ID: 0, Title: "A", Completed: true})

	require.Len(t, calls, 2)
	assert.Equal(t, 101, id)
	assert.Len(t, calls[0], 3)
	assert.Equal(t, "B2", calls[1][1].Title)

	unsub()
	u.Remove(id)
	assert.Len(t, calls, 2)
	assert.Len(t, p.State(), 2)
}

func TestScopedAccessors(t *testing.T) {
	p := newProvider()
	ctx := WithProvider(context.Background(), p)

	UpdaterFrom(ctx).Add("C")
	assert.Equal(t, "C", StateFrom(ctx)[2].Title)
	assert.Same(t, p, ProviderFrom(ctx))
}

func TestAccessOutsideScopePanics(t *testing.T) {
	ctx := context.Background()
	for name, fn := range map[string]func(){
		"state":   func() { StateFrom(ctx) },
		"updater": func() { UpdaterFrom(ctx) },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				r := recover()
				require.NotNil(t, r)
				err, ok := r.(error)
				require.True(t, ok)
				assert.True(t, errors.Is(err, ErrMissingProvider))
				assert.Contains(t, err.Error(), "must be used within")
			}()
			fn()
		})
	}
}

func TestOldStateSurvivesEdits(t *testing.T) {
	p := newProvider()
	old := p.State()
	p.Updater().Update(model.Item{ID: 0, Title: "changed"})
	assert.Equal(t, "A", old[0].Title)
	assert.Equal(t, "changed", p.State()[0].Title)
}
