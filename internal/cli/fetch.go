package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/fetch"
	"github.com/idilsaglam/tada/internal/model"
)

// outcome is one JSON line printed by `tada fetch`.
type outcome struct {
	Status string       `json:"status"`
	Items  []model.Item `json:"items,omitempty"`
	Error  string       `json:"error,omitempty"`
}

func newFetchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the remote list and print each state as a JSON line",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.offline {
				return usageError{fmt.Errorf("fetch cannot be used with --offline")}
			}
			return a.fetch(cmd.Context())
		},
	}
}

func (a *app) fetch(ctx context.Context) error {
	enc := json.NewEncoder(a.stdout)
	emit := func(st fetch.State[[]model.Item]) error {
		o := outcome{Status: st.Status().String()}
		if items, ok := st.Data(); ok {
			o.Items = items
		}
		if err := st.Err(); err != nil {
			o.Error = err.Error()
		}
		return enc.Encode(o)
	}

	m := fetch.NewMachine[[]model.Item](a.log)
	t, _, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	if err := emit(m.State()); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	items, lerr := a.loader()(t.Ctx)
	m.Complete(t, items, lerr)
	st := m.State()
	if err := emit(st); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if st.Status() == fetch.Error {
		return fmt.Errorf("fetch: %w", st.Err())
	}
	return nil
}
