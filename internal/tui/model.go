package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/idilsaglam/tada/internal/fetch"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/todos"
)

// Options configure the interactive list.
type Options struct {
	// Loader reads the initial items. When nil the list starts from Seed
	// without fetching.
	Loader fetch.Loader[[]model.Item]
	Seed   []model.Item

	// IDFloor is the lowest id Add may assign. Zero is a valid floor.
	IDFloor int
	Log     zerolog.Logger
}

// fetchDoneMsg carries the outcome of the read started with ticket.
type fetchDoneMsg struct {
	ticket fetch.Ticket
	items  []model.Item
	err    error
}

type inputMode int

const (
	modeBrowse inputMode = iota
	modeAdd
	modeEdit
)

var (
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind   = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	toggleBind = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	deleteBind = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
)

// Model is the Bubble Tea model of the todo screen. It owns the fetch
// machine; once the read succeeds the list is served by a store.Provider
// scoped into ctx.
type Model struct {
	ctx     context.Context
	opt     Options
	machine *fetch.Machine[[]model.Item]
	log     zerolog.Logger

	provider *store.Provider
	unsub    func()

	list    list.Model
	listCmd tea.Cmd // pending command from a list refresh

	mode     inputMode
	editID   int
	ti       textinput.Model
	inputErr string

	width, height int
}

// New builds the model. ctx is the parent of the fetch context and of the
// provider scope.
func New(ctx context.Context, opt Options) *Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	extra := func() []key.Binding { return []key.Binding{toggleBind, addBind, editBind, deleteBind} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	return &Model{
		ctx:     ctx,
		opt:     opt,
		machine: fetch.NewMachine[[]model.Item](opt.Log),
		log:     opt.Log,
		list:    l,
		ti:      ti,
		width:   80,
		height:  24,
	}
}

// Run starts the program on the alternate screen and blocks until the user
// quits.
func Run(ctx context.Context, opt Options) error {
	m := New(ctx, opt)
	defer m.teardown()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// FetchState exposes the state of the initial read.
func (m *Model) FetchState() fetch.State[[]model.Item] { return m.machine.State() }

// Provider returns the provider serving the list, nil until items are known.
func (m *Model) Provider() *store.Provider { return m.provider }

func (m *Model) Init() tea.Cmd {
	if m.opt.Loader == nil {
		m.mount(m.opt.Seed)
		return nil
	}
	return m.startFetch()
}

// startFetch issues Start and returns the command performing the read.
func (m *Model) startFetch() tea.Cmd {
	t, ok, err := m.machine.Begin(m.ctx)
	if err != nil || !ok {
		return nil
	}
	load := m.opt.Loader
	return func() tea.Msg {
		items, err := load(t.Ctx)
		return fetchDoneMsg{ticket: t, items: items, err: err}
	}
}

// mount seeds a provider with items and subscribes the list to it.
func (m *Model) mount(items []model.Item) {
	m.provider = store.NewProvider(items, m.opt.IDFloor, m.log)
	m.ctx = store.WithProvider(m.ctx, m.provider)
	m.unsub = m.provider.Subscribe(m.refresh)
	m.refresh(m.provider.State())
}

// refresh is the read-channel consumer: it mirrors items into the list and
// its counts header.
func (m *Model) refresh(items []model.Item) {
	dn, pn := todos.Stats(items)
	m.list.Title = fmt.Sprintf("%s %d  %s %d  %s %d",
		successStyle.Render("✔"), dn,
		pendingStyle.Render("•"), pn,
		accentStyle.Render("Total"), len(items),
	)
	m.listCmd = m.list.SetItems(toListItems(items))
}

func (m *Model) teardown() {
	m.machine.Teardown()
	if m.unsub != nil {
		m.unsub()
		m.unsub = nil
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case fetchDoneMsg:
		if !m.machine.Complete(msg.ticket, msg.items, msg.err) {
			return m, nil
		}
		if items, ok := m.machine.State().Data(); ok {
			m.mount(items)
		}
		return m, m.flushListCmd()
	}

	if m.provider == nil {
		return m.updateFetching(msg)
	}
	if m.mode != modeBrowse {
		return m.updateInput(msg)
	}
	return m.updateBrowse(msg)
}

// updateFetching handles keys while the list has no data yet.
func (m *Model) updateFetching(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "q", "ctrl+c":
		m.teardown()
		return m, tea.Quit
	case "esc":
		m.machine.Cancel()
	case "r":
		if s := m.machine.State().Status(); s == fetch.Idle || s == fetch.Error {
			return m, m.startFetch()
		}
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			title := strings.TrimSpace(m.ti.Value())
			if title == "" {
				m.inputErr = "Title cannot be empty"
				return m, nil
			}
			u := store.UpdaterFrom(m.ctx)
			if m.mode == modeAdd {
				u.Add(title)
				m.list.Select(len(m.list.Items()) - 1)
			} else if it, ok := m.find(m.editID); ok {
				it.Title = title
				u.Update(it)
			}
			m.closeInput()
			return m, m.flushListCmd()
		case "esc":
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if ok && m.list.FilterState() != list.Filtering {
		switch k.String() {
		case "q", "ctrl+c":
			m.teardown()
			return m, tea.Quit
		case " ":
			if it, ok := m.selected(); ok {
				it.Completed = !it.Completed
				store.UpdaterFrom(m.ctx).Update(it)
			}
			return m, m.flushListCmd()
		case "d":
			if it, ok := m.selected(); ok {
				store.UpdaterFrom(m.ctx).Remove(it.ID)
			}
			return m, m.flushListCmd()
		case "a":
			return m, m.openInput(modeAdd, "", "New item title...")
		case "e":
			if it, ok := m.selected(); ok {
				m.editID = it.ID
				return m, m.openInput(modeEdit, it.Title, "Edit item title...")
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) openInput(mode inputMode, value, placeholder string) tea.Cmd {
	m.mode = mode
	m.inputErr = ""
	m.ti.SetValue(value)
	m.ti.CursorEnd()
	m.ti.Placeholder = placeholder
	m.resize()
	return m.ti.Focus()
}

func (m *Model) closeInput() {
	m.mode = modeBrowse
	m.inputErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

func (m *Model) selected() (model.Item, bool) {
	li, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Item{}, false
	}
	return m.find(li.todo.ID)
}

// find reads the current value of id from the provider rather than the
// possibly filtered list.
func (m *Model) find(id int) (model.Item, bool) {
	for _, it := range store.StateFrom(m.ctx) {
		if it.ID == id {
			return it, true
		}
	}
	return model.Item{}, false
}

func (m *Model) flushListCmd() tea.Cmd {
	cmd := m.listCmd
	m.listCmd = nil
	return cmd
}

func (m *Model) resize() {
	h := m.height - 6
	if m.mode != modeBrowse {
		h -= 4
	}
	if h < 1 {
		h = 1
	}
	m.list.SetSize(m.width-4, h)
}

func (m *Model) View() string {
	st := m.machine.State()
	header := titleStyle.Render("Todos")
	if m.opt.Loader != nil {
		header += "  " + chip(st.Status())
	}

	var body string
	switch {
	case m.provider != nil:
		body = m.listView()
	case st.Status() == fetch.Loading:
		body = pendingStyle.Render("Loading todos...") + "\n" + helpStyle.Render("esc cancel • q quit")
	case st.Status() == fetch.Error:
		body = errorStyle.Render("✖ "+st.Err().Error()) + "\n" + helpStyle.Render("r retry • q quit")
	default:
		body = mutedStyle.Render("Nothing loaded.") + "\n" + helpStyle.Render("r fetch • q quit")
	}
	return panelStyle.Render(header + "\n\n" + body)
}

func (m *Model) listView() string {
	content := m.list.View()
	if m.mode != modeBrowse {
		title := "Add new item"
		if m.mode == modeEdit {
			title = "Edit item"
		}
		if m.inputErr != "" {
			title += " - " + errorStyle.Render(m.inputErr)
		}
		content += "\n" + panelStyle.Render(title+"\n"+m.ti.View())
	}
	return content
}
