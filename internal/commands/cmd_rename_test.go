package commands

import (
	"context"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/scramble-dev/scramble/internal/core/batch"
	"github.com/scramble-dev/scramble/internal/core/config"
	"github.com/scramble-dev/scramble/internal/scramble"
	"github.com/scramble-dev/scramble/internal/store/jsonfile"
)

func newTestRenameCmd(t *testing.T) *RenameCmd {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	flags := &Flags{
		Config: &cfg,
		Service: scramble.New(
			&cfg,
			jsonfile.New(cfg.HistoryFile()),
			rand.New(rand.NewPCG(1, 2)),
			zerolog.New(io.Discard),
		),
	}
	return NewRenameCmd(flags)
}

func haltOnError(path string, err error) scramble.Recovery {
	return scramble.RecoveryHalt
}

func TestExecute_TUIModeProceedsWithoutTerminal(t *testing.T) {
	if isInteractive() {
		t.Skip("requires a non-interactive stdin")
	}

	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "f3a9.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	cmd := newTestRenameCmd(t)
	rc := cmd.flags.Config.Rename
	rc.Confirm = config.ConfirmTUI

	pairs := []batch.Pair{{Source: src, Destination: dst}}
	c := &cli.Command{Writer: io.Discard}

	executed, err := cmd.execute(context.Background(), c, pairs, rc, haltOnError)
	require.NoError(t, err)
	require.Len(t, executed, 1)

	assert.NoFileExists(t, src)
	assert.FileExists(t, dst)
}

func TestResolveOptions_ZeroBatchFlagOverridesConfig(t *testing.T) {
	cmd := newTestRenameCmd(t)
	cmd.batchSize = 0

	rc := cmd.resolveOptions()
	require.NotNil(t, rc.BatchSize)
	assert.Equal(t, 0, rc.BatchLimit())
}
