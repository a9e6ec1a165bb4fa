// Package cli implements the motoledger admin commands.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/google/subcommands"

	"github.com/mmynk/motoledger/internal/storage"
)

// Env is what every command needs: where to write and how to reach the
// database.
type Env struct {
	Out       io.Writer
	Err       io.Writer
	OpenStore func(ctx context.Context) (storage.Store, error)
}

// Register adds the admin commands to c.
func Register(c *subcommands.Commander, env *Env) {
	c.Register(&seedCmd{env: env}, "data")
	c.Register(&addUserCmd{env: env}, "users")
	c.Register(&summaryCmd{env: env}, "reports")
}

func (e *Env) errorf(format string, args ...any) {
	fmt.Fprintf(e.Err, "Error: "+format+"\n", args...)
}

// withStore opens the store, runs fn and closes it again.
func (e *Env) withStore(ctx context.Context, fn func(storage.Store) subcommands.ExitStatus) subcommands.ExitStatus {
	store, err := e.OpenStore(ctx)
	if err != nil {
		e.errorf("opening database: %v", err)
		return subcommands.ExitFailure
	}
	defer store.Close()
	return fn(store)
}
