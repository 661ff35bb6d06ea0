package scramble

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scramble-dev/scramble/internal/core/batch"
	"github.com/scramble-dev/scramble/internal/core/charset"
	"github.com/scramble-dev/scramble/internal/core/config"
	"github.com/scramble-dev/scramble/internal/core/namegen"
)

// mockStore implements batch.Store for testing.
type mockStore struct {
	records map[string]batch.Record
}

func newMockStore() *mockStore {
	return &mockStore{records: make(map[string]batch.Record)}
}

func (m *mockStore) List(_ context.Context) ([]batch.Record, error) {
	var result []batch.Record
	for _, r := range m.records {
		result = append(result, r)
	}
	return result, nil
}

func (m *mockStore) Get(_ context.Context, id string) (batch.Record, error) {
	r, ok := m.records[id]
	if !ok {
		return batch.Record{}, batch.ErrNotFound
	}
	return r, nil
}

func (m *mockStore) Save(_ context.Context, r batch.Record) error {
	m.records[r.ID] = r
	return nil
}

func (m *mockStore) LastExecuted(_ context.Context) (batch.Record, error) {
	var (
		latest batch.Record
		found  bool
	)
	for _, r := range m.records {
		if r.Reverted {
			continue
		}
		if !found || r.ExecutedAt.After(latest.ExecutedAt) {
			latest = r
			found = true
		}
	}
	if !found {
		return batch.Record{}, batch.ErrEmpty
	}
	return latest, nil
}

func newTestService(t *testing.T, store batch.Store) *Service {
	t.Helper()
	if store == nil {
		store = newMockStore()
	}
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	return New(&cfg, store, rand.New(rand.NewPCG(11, 12)), zerolog.New(io.Discard))
}

func testOptions(t *testing.T, rc config.RenameConfig) Options {
	t.Helper()
	opts, err := OptionsFromConfig(rc, 0, "")
	require.NoError(t, err)
	return opts
}

// writeFiles creates empty files in dir and returns their absolute paths.
func writeFiles(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(paths[i], []byte("content"), 0o644))
	}
	return paths
}

func haltOnError(t *testing.T) OnError {
	return func(path string, err error) Recovery {
		t.Helper()
		t.Errorf("unexpected error for %s: %v", path, err)
		return RecoveryHalt
	}
}

func TestPlan_AssignsDistinctNames(t *testing.T) {
	dir := t.TempDir()
	files := writeFiles(t, dir, "a.txt", "b.txt", "c.txt", "d.txt", "e.txt")
	svc := newTestService(t, nil)

	plan, err := svc.Plan(context.Background(), files, testOptions(t, config.RenameConfig{
		CharSet: charset.SelBase16,
		Length:  8,
		ExtMode: "keep_last",
	}))
	require.NoError(t, err)
	require.Len(t, plan.Pairs, len(files))

	seen := make(map[string]bool)
	for i, pair := range plan.Pairs {
		// input order preserved
		assert.Equal(t, files[i], pair.Source)
		assert.Equal(t, dir, filepath.Dir(pair.Destination))
		assert.True(t, strings.HasSuffix(pair.Destination, ".txt"))

		assert.False(t, seen[pair.Destination], "destination %q assigned twice", pair.Destination)
		seen[pair.Destination] = true

		// never collides with a pre-existing file
		for _, f := range files {
			assert.NotEqual(t, f, pair.Destination)
		}
	}

	// planning alone does not touch the filesystem
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, len(files))
}

func TestPlan_GroupsPerDirectory(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	filesA := writeFiles(t, dirA, "one.txt", "two.txt")
	filesB := writeFiles(t, dirB, "three.txt")

	svc := newTestService(t, nil)
	files := []string{filesA[0], filesB[0], filesA[1]}

	plan, err := svc.Plan(context.Background(), files, testOptions(t, config.RenameConfig{
		CharSet: charset.SelBase16,
		Length:  6,
		ExtMode: "keep_last",
	}))
	require.NoError(t, err)
	require.Len(t, plan.Pairs, 3)
	require.Len(t, plan.Decisions, 2)

	// pairs stay in input order, destinations stay in source directories
	assert.Equal(t, dirA, filepath.Dir(plan.Pairs[0].Destination))
	assert.Equal(t, dirB, filepath.Dir(plan.Pairs[1].Destination))
	assert.Equal(t, dirA, filepath.Dir(plan.Pairs[2].Destination))

	assert.Equal(t, 2, plan.Decisions[0].Files)
	assert.Equal(t, 1, plan.Decisions[1].Files)
}

func TestPlan_SaturatedSpaceUsesMatch(t *testing.T) {
	dir := t.TempDir()
	files := writeFiles(t, dir, "a", "b", "c")
	svc := newTestService(t, nil)

	// q = 25, p = 3 -> ratio 0.12 >= 0.1
	plan, err := svc.Plan(context.Background(), files, testOptions(t, config.RenameConfig{
		CharSet:     charset.SelCustom,
		CustomChars: "abcde",
		Length:      2,
		ExtMode:     "discard",
	}))
	require.NoError(t, err)
	require.Len(t, plan.Decisions, 1)
	assert.Equal(t, namegen.StrategyMatch, plan.Decisions[0].Strategy)
	assert.Len(t, plan.Pairs, 3)
}

func TestPlan_TooManyFilesForSpace(t *testing.T) {
	dir := t.TempDir()
	files := writeFiles(t, dir, "a", "b", "c", "d", "e")
	svc := newTestService(t, nil)

	// q = 4 < p = 5
	_, err := svc.Plan(context.Background(), files, testOptions(t, config.RenameConfig{
		CharSet:     charset.SelCustom,
		CustomChars: "ab",
		Length:      2,
		ExtMode:     "discard",
	}))

	var exhausted *namegen.ExhaustedSpaceError
	require.Error(t, err)
	assert.True(t, errors.As(err, &exhausted))
}

func TestPlan_ComposedCollisionWithDisk(t *testing.T) {
	dir := t.TempDir()
	// occupy one name of a q=2 space; the single remaining name must be used
	writeFiles(t, dir, "x_a.txt")
	files := writeFiles(t, dir, "input.txt")
	svc := newTestService(t, nil)

	plan, err := svc.Plan(context.Background(), files, testOptions(t, config.RenameConfig{
		CharSet:     charset.SelCustom,
		CustomChars: "ab",
		Length:      1,
		Prefix:      "x_",
		ExtMode:     "keep_last",
	}))
	require.NoError(t, err)
	require.Len(t, plan.Pairs, 1)
	assert.Equal(t, filepath.Join(dir, "x_b.txt"), plan.Pairs[0].Destination)
}

func TestPlan_ForcedStrategy(t *testing.T) {
	dir := t.TempDir()
	files := writeFiles(t, dir, "a.txt")
	svc := newTestService(t, nil)

	opts, err := OptionsFromConfig(config.RenameConfig{
		CharSet: charset.SelBase16,
		Length:  8,
		ExtMode: "keep_last",
	}, 0, string(namegen.StrategyOnDemand))
	require.NoError(t, err)

	plan, err := svc.Plan(context.Background(), files, opts)
	require.NoError(t, err)
	require.Len(t, plan.Decisions, 1)
	assert.True(t, plan.Decisions[0].Forced)
	assert.Equal(t, namegen.StrategyOnDemand, plan.Decisions[0].Strategy)
}

func TestOptionsFromConfig_Invalid(t *testing.T) {
	t.Run("bad charset", func(t *testing.T) {
		_, err := OptionsFromConfig(config.RenameConfig{CharSet: "emoji", Length: 8, ExtMode: "keep_last"}, 0, "")
		var cfgErr *charset.ConfigError
		assert.True(t, errors.As(err, &cfgErr))
	})

	t.Run("bad strategy", func(t *testing.T) {
		_, err := OptionsFromConfig(config.RenameConfig{CharSet: charset.SelBase16, Length: 8, ExtMode: "keep_last"}, 0, "quantum")
		assert.Error(t, err)
	})
}

func TestResolveInputs(t *testing.T) {
	t.Run("dedup preserves order", func(t *testing.T) {
		dir := t.TempDir()
		files := writeFiles(t, dir, "a.txt", "b.txt")

		resolved, err := ResolveInputs([]string{files[0], files[1], files[0]}, haltOnError(t))
		require.NoError(t, err)
		assert.Equal(t, []string{files[0], files[1]}, resolved)
	})

	t.Run("missing file skipped", func(t *testing.T) {
		dir := t.TempDir()
		files := writeFiles(t, dir, "a.txt")
		missing := filepath.Join(dir, "missing.txt")

		var sawErr bool
		resolved, err := ResolveInputs([]string{missing, files[0]}, func(path string, err error) Recovery {
			sawErr = true
			assert.Equal(t, missing, path)
			return RecoverySkip
		})
		require.NoError(t, err)
		assert.True(t, sawErr)
		assert.Equal(t, files, resolved)
	})

	t.Run("halt aborts", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "missing.txt")
		_, err := ResolveInputs([]string{missing}, func(string, error) Recovery {
			return RecoveryHalt
		})
		assert.ErrorIs(t, err, ErrHalted)
	})
}
