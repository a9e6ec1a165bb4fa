package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/mmynk/motoledger/internal/calculator"
	"github.com/mmynk/motoledger/internal/storage"
)

type summaryCmd struct {
	env    *Env
	filter string
	plain  bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the dashboard and per-bike analytics" }
func (*summaryCmd) Usage() string {
	return `motoledger summary [-filter all|sold|unsold] [-plain]

  Displays the dashboard totals and the analytics of the selected bikes.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.filter, "filter", string(calculator.FilterAll), "Bikes to analyse: all, sold or unsold")
	f.BoolVar(&c.plain, "plain", false, "Print raw markdown instead of rendering it")
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, err := calculator.ParseFilter(c.filter)
	if err != nil {
		c.env.errorf("%v", err)
		return subcommands.ExitUsageError
	}

	return c.env.withStore(ctx, func(store storage.Store) subcommands.ExitStatus {
		bikes, err := store.ListMotorbikes(ctx)
		if err != nil {
			c.env.errorf("listing motorbikes: %v", err)
			return subcommands.ExitFailure
		}

		md := SummaryMarkdown(calculator.Aggregate(bikes, calculator.FilterAll), calculator.Aggregate(bikes, filter))
		if err := c.print(md); err != nil {
			c.env.errorf("rendering summary: %v", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}

func (c *summaryCmd) print(md string) error {
	if c.plain {
		_, err := fmt.Fprint(c.env.Out, md)
		return err
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		return err
	}
	out, err := r.Render(md)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(c.env.Out, out)
	return err
}
