package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/fetch"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/todos"
	"github.com/idilsaglam/tada/internal/ui"
)

func newListCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "Print the list once and exit",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.list(cmd.Context())
		},
	}
	cmd.Flags().Bool("group", false, "group output by pending/done")
	_ = a.v.BindPFlag("ui.group", cmd.Flags().Lookup("group"))
	return cmd
}

// load returns the items to show: the seed when offline, the fetched
// payload otherwise.
func (a *app) load(ctx context.Context) ([]model.Item, fetch.Status, error) {
	load := a.loader()
	if load == nil {
		items, err := a.seed()
		return items, fetch.Idle, err
	}

	m := fetch.NewMachine[[]model.Item](a.log)
	st, err := m.Run(ctx, load)
	if err != nil {
		return nil, st.Status(), err
	}
	if st.Status() == fetch.Error {
		return nil, st.Status(), fmt.Errorf("fetch: %w", st.Err())
	}
	items, ok := st.Data()
	if !ok {
		return nil, st.Status(), errors.New("fetch: no data")
	}
	return items, st.Status(), nil
}

func (a *app) list(ctx context.Context) error {
	items, status, err := a.load(ctx)
	if err != nil {
		return err
	}

	t := ui.Current()
	d, p := todos.Stats(items)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, "Todos"),
		ui.C(t.Success, t.SymDone), d,
		ui.C(t.Pending, t.SymUnchecked), p,
		ui.C(t.Accent, "Total"), len(items),
	)
	if !a.offline {
		header += "  " + ui.StatusChip(status)
	}

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(t.Muted, ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")

	if a.v.GetBool("ui.group") {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(items)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: edit interactively with `tada tui`"))
	ui.Panel(a.stdout, lines)
	return nil
}

// -------------- rendering helpers --------------

func flatLines(items []model.Item) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{ui.C(t.Muted, "no items")}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		box, color := t.BoxUnchecked, t.Muted
		if it.Completed {
			box, color = t.BoxChecked, t.Success
		}
		title := it.Title
		if r := []rune(title); len(r) > 80 {
			title = string(r[:77]) + "..."
		}
		out = append(out, fmt.Sprintf("%s %s %s",
			ui.Dim(fmt.Sprintf("#%-3d", it.ID)), ui.C(color, box), title))
	}
	return out
}

func groupLines(items []model.Item) []string {
	t := ui.Current()
	var pend, done []model.Item
	for _, it := range items {
		if it.Completed {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	section := func(name string, part []model.Item) []string {
		out := []string{ui.C(t.Accent, name)}
		if len(part) == 0 {
			return append(out, ui.C(t.Muted, "(none)"))
		}
		return append(out, flatLines(part)...)
	}

	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}
