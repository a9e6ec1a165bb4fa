package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/mmynk/motoledger/internal/auth"
	"github.com/mmynk/motoledger/internal/storage"
)

type addUserCmd struct {
	env      *Env
	email    string
	password string
}

func (*addUserCmd) Name() string     { return "adduser" }
func (*addUserCmd) Synopsis() string { return "create an account" }
func (*addUserCmd) Usage() string {
	return `motoledger adduser -email <email> -password <password>

  Creates an account that can sign in to the server.
`
}

func (c *addUserCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Account email (case-insensitive)")
	f.StringVar(&c.password, "password", "", "Account password")
}

func (c *addUserCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.email == "" || c.password == "" {
		c.env.errorf("-email and -password are required")
		return subcommands.ExitUsageError
	}

	return c.env.withStore(ctx, func(store storage.Store) subcommands.ExitStatus {
		user, err := auth.NewPasswordAuthenticator(store).Register(ctx, c.email, c.password)
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			c.env.errorf("%s is already registered", c.email)
			return subcommands.ExitFailure
		case err != nil:
			c.env.errorf("%v", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(c.env.Out, "Created user %s (%s).\n", user.Email, user.ID)
		return subcommands.ExitSuccess
	})
}
