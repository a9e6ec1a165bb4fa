package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/mmynk/motoledger/internal/storage"
)

type seedCmd struct {
	env *Env
}

func (*seedCmd) Name() string     { return "seed" }
func (*seedCmd) Synopsis() string { return "load the example motorbikes and parts" }
func (*seedCmd) Usage() string {
	return `motoledger seed

  Adds the example fleet (Honda CB750, Yamaha XS650) unless it is
  already present.
`
}

func (*seedCmd) SetFlags(*flag.FlagSet) {}

func (c *seedCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.withStore(ctx, func(store storage.Store) subcommands.ExitStatus {
		n, err := storage.SeedExampleData(ctx, store)
		if err != nil {
			c.env.errorf("%v", err)
			return subcommands.ExitFailure
		}
		if n == 0 {
			fmt.Fprintln(c.env.Out, "Example data already present.")
		} else {
			fmt.Fprintf(c.env.Out, "Added %d example motorbikes.\n", n)
		}
		return subcommands.ExitSuccess
	})
}
