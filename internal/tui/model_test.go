package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/fetch"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/todos"
)

func remote() []model.Item {
	return []model.Item{
		{ID: 1, Title: "delectus aut autem"},
		{ID: 2, Title: "quis ut nam", Completed: true},
	}
}

func keys(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func newLoaded(t *testing.T) *Model {
	t.Helper()
	m := New(context.Background(), Options{
		Loader:  func(context.Context) ([]model.Item, error) { return remote(), nil },
		IDFloor: todos.DefaultIDFloor,
		Log:     zerolog.Nop(),
	})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.Equal(t, fetch.Loading, m.FetchState().Status())
	m.Update(cmd())
	require.NotNil(t, m.Provider())
	return m
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(keys(string(r)))
	}
}

func TestFetchSuccessMountsList(t *testing.T) {
	m := newLoaded(t)

	data, ok := m.FetchState().Data()
	require.True(t, ok)
	assert.Equal(t, remote(), data)
	assert.Len(t, m.list.Items(), 2)
	assert.Contains(t, m.View(), "Success")
	assert.Contains(t, m.View(), "delectus aut autem")
}

func TestFetchErrorIsRendered(t *testing.T) {
	m := New(context.Background(), Options{
		Loader: func(context.Context) ([]model.Item, error) {
			return nil, errors.New("request failed with status 500 Internal Server Error")
		},
		Log: zerolog.Nop(),
	})
	m.Update(m.Init()())

	assert.Equal(t, fetch.Error, m.FetchState().Status())
	assert.Nil(t, m.Provider())
	assert.Contains(t, m.View(), "status 500")
}

func TestEscCancelsAndLateResultIsDropped(t *testing.T) {
	m := New(context.Background(), Options{
		Loader: func(context.Context) ([]model.Item, error) { return remote(), nil },
		Log:    zerolog.Nop(),
	})
	cmd := m.Init()
	m.Update(esc)
	assert.Equal(t, fetch.Idle, m.FetchState().Status())

	m.Update(cmd())
	assert.Equal(t, fetch.Idle, m.FetchState().Status())
	assert.Nil(t, m.Provider())

	// r starts a fresh read
	_, retry := m.Update(keys("r"))
	require.NotNil(t, retry)
	m.Update(retry())
	assert.Equal(t, fetch.Success, m.FetchState().Status())
}

func TestQuitWhileLoadingTearsDown(t *testing.T) {
	m := New(context.Background(), Options{
		Loader: func(context.Context) ([]model.Item, error) { return remote(), nil },
		Log:    zerolog.Nop(),
	})
	cmd := m.Init()
	_, quit := m.Update(keys("q"))
	require.NotNil(t, quit)
	assert.IsType(t, tea.QuitMsg{}, quit())

	m.Update(cmd())
	assert.Equal(t, fetch.Loading, m.FetchState().Status())
	assert.Nil(t, m.Provider())
}

func TestOfflineStartsFromSeed(t *testing.T) {
	m := New(context.Background(), Options{Seed: remote(), Log: zerolog.Nop()})
	assert.Nil(t, m.Init())
	require.NotNil(t, m.Provider())
	assert.Equal(t, fetch.Idle, m.FetchState().Status())
	assert.Len(t, m.list.Items(), 2)
}

func TestToggleDeleteAddEdit(t *testing.T) {
	m := newLoaded(t)
	p := m.Provider()

	m.Update(space)
	assert.True(t, p.State()[0].Completed)

	m.Update(keys("a"))
	typeText(m, "buy milk")
	m.Update(enter)
	items := p.State()
	require.Len(t, items, 3)
	assert.Equal(t, model.Item{ID: 101, Title: "buy milk"}, items[2])
	assert.Len(t, m.list.Items(), 3)

	m.list.Select(1)
	m.Update(keys("e"))
	typeText(m, "!")
	m.Update(enter)
	assert.Equal(t, "quis ut nam!", p.State()[1].Title)
	assert.True(t, p.State()[1].Completed)

	m.list.Select(0)
	m.Update(keys("d"))
	assert.Equal(t, []int{2, 101}, ids(p.State()))
	assert.Len(t, m.list.Items(), 2)
}

func TestEmptyTitleRejected(t *testing.T) {
	m := newLoaded(t)
	m.Update(keys("a"))
	m.Update(enter)
	assert.Equal(t, "Title cannot be empty", m.inputErr)
	assert.Len(t, m.Provider().State(), 2)

	m.Update(esc)
	assert.Equal(t, modeBrowse, m.mode)
}

func ids(items []model.Item) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestZeroIDFloorIsHonoured(t *testing.T) {
	m := New(context.Background(), Options{Seed: remote(), IDFloor: 0, Log: zerolog.Nop()})
	m.Init()

	id := m.Provider().Updater().Add("next")
	assert.Equal(t, 3, id)
}

func TestHeaderCountsFollowEdits(t *testing.T) {
	m := newLoaded(t)
	assert.Contains(t, m.list.Title, "✔ 1")
	assert.Contains(t, m.list.Title, "Total 2")

	m.Update(space)
	assert.Contains(t, m.list.Title, "✔ 2")

	before := m.list.Title
	_ = m.View()
	assert.Equal(t, before, m.list.Title)
}
