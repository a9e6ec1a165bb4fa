package cli

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/motoledger/internal/storage"
	"github.com/mmynk/motoledger/internal/storage/sqlite"
)

type testEnv struct {
	env    *Env
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "cli.db")
	te := &testEnv{out: &bytes.Buffer{}, errOut: &bytes.Buffer{}}
	te.env = &Env{
		Out: te.out,
		Err: te.errOut,
		OpenStore: func(context.Context) (storage.Store, error) {
			return sqlite.New(dbPath)
		},
	}
	return te
}

// run executes one command line against a fresh commander, the way main does.
func (te *testEnv) run(t *testing.T, args ...string) subcommands.ExitStatus {
	t.Helper()
	te.out.Reset()
	te.errOut.Reset()

	fs := flag.NewFlagSet("motoledger", flag.ContinueOnError)
	commander := subcommands.NewCommander(fs, "motoledger")
	Register(commander, te.env)
	require.NoError(t, fs.Parse(args))
	return commander.Execute(context.Background())
}

func TestSeedCommand(t *testing.T) {
	te := newTestEnv(t)

	assert.Equal(t, subcommands.ExitSuccess, te.run(t, "seed"))
	assert.Contains(t, te.out.String(), "Added 2 example motorbikes.")

	assert.Equal(t, subcommands.ExitSuccess, te.run(t, "seed"))
	assert.Contains(t, te.out.String(), "Example data already present.")
}

func TestAddUserCommand(t *testing.T) {
	te := newTestEnv(t)

	tests := []struct {
		name   string
		args   []string
		status subcommands.ExitStatus
		out    string
		errOut string
	}{
		{
			name:   "missing flags",
			args:   []string{"adduser", "-email", "a@x.com"},
			status: subcommands.ExitUsageError,
			errOut: "-email and -password are required",
		},
		{
			name:   "creates user",
			args:   []string{"adduser", "-email", "A@X.com", "-password", "pw123"},
			status: subcommands.ExitSuccess,
			out:    "Created user a@x.com",
		},
		{
			name:   "duplicate email",
			args:   []string{"adduser", "-email", "a@x.com", "-password", "other"},
			status: subcommands.ExitFailure,
			errOut: "already registered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, te.run(t, tt.args...))
			assert.Contains(t, te.out.String(), tt.out)
			assert.Contains(t, te.errOut.String(), tt.errOut)
		})
	}
}

func TestSummaryCommand(t *testing.T) {
	te := newTestEnv(t)
	require.Equal(t, subcommands.ExitSuccess, te.run(t, "seed"))

	t.Run("plain markdown", func(t *testing.T) {
		require.Equal(t, subcommands.ExitSuccess, te.run(t, "summary", "-plain"))
		out := te.out.String()
		assert.Contains(t, out, "# Motorbike ledger")
		assert.Contains(t, out, "| $4,866.25 | $9,732.50 | $0.00 |")
		assert.Contains(t, out, "| Honda CB750 | - | $2,870.50 | $120.50 | $250.00 | unsold | - | - | - |")
		assert.Contains(t, out, "- Tanya invested $316.25, profit share $0.00")
	})

	t.Run("sold filter", func(t *testing.T) {
		require.Equal(t, subcommands.ExitSuccess, te.run(t, "summary", "-plain", "-filter", "sold"))
		assert.Contains(t, te.out.String(), "## Analytics (sold)")
		assert.Contains(t, te.out.String(), "No motorbikes match.")
	})

	t.Run("rendered", func(t *testing.T) {
		require.Equal(t, subcommands.ExitSuccess, te.run(t, "summary"))
		assert.Contains(t, te.out.String(), "Motorbike ledger")
	})

	t.Run("bad filter", func(t *testing.T) {
		assert.Equal(t, subcommands.ExitUsageError, te.run(t, "summary", "-filter", "broken"))
		assert.Contains(t, te.errOut.String(), "unknown filter")
	})
}
