package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/stockpile/internal/workload"
	"github.com/ajitpratap0/stockpile/pkg/config"
	stockjson "github.com/ajitpratap0/stockpile/pkg/json"
	"github.com/ajitpratap0/stockpile/pkg/pool"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Stockpile v"+version)
	assert.Contains(t, out, "Go version:")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stockpile.yaml")

	out, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	cfg := &config.Config{}
	require.NoError(t, config.Load(path, cfg))
	assert.Equal(t, config.DefaultPools(), cfg.Pools)

	_, err = execute(t, "config", "init", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "config", "init", "--force", path)
	require.NoError(t, err)
}

func TestSimulateCommand(t *testing.T) {
	out, err := execute(t, "simulate", "--growth", "lean", "--rounds", "3", "--burst", "4")
	require.NoError(t, err)

	var reports []workload.Report
	require.NoError(t, stockjson.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)

	r := reports[0]
	assert.Equal(t, "widgets", r.Stats.Name)
	assert.Equal(t, pool.GrowthLean, r.Stats.Growth)
	assert.Equal(t, 4, r.Stats.Created)
	assert.Equal(t, 0, r.Stats.InUse)
	assert.Equal(t, uint64(12), r.Stats.Checkouts)
	assert.Equal(t, 4, r.PeakInUse)
}

func TestSimulateFromConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pools.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
workload:
  rounds: 2
  burst: 5
  workers: 2
pools:
  - name: bullets
    base_size: 4
    growth: double
  - name: sparks
    growth: lean
`), 0o600))

	out, err := execute(t, "simulate", "--config", path, "--pool", "bullets", "--metrics")
	require.NoError(t, err)

	// The JSON report comes first, then the metrics exposition.
	idx := strings.Index(out, "# HELP")
	require.Positive(t, idx)

	var reports []workload.Report
	require.NoError(t, stockjson.Unmarshal([]byte(out[:idx]), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, "bullets", reports[0].Stats.Name)
	assert.Equal(t, 2, reports[0].Plan.Workers)
	assert.Equal(t, uint64(20), reports[0].Stats.Checkouts)

	assert.Contains(t, out[idx:], `stockpile_pool_checkouts_total{pool="bullets"} 20`)
}

func TestSimulateUnknownPool(t *testing.T) {
	_, err := execute(t, "simulate", "--pool", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `pool "missing" is not configured`)
}

func TestSimulateInvalidGrowth(t *testing.T) {
	_, err := execute(t, "simulate", "--growth", "sideways")
	require.Error(t, err)
}

func TestSceneCommand(t *testing.T) {
	out, err := execute(t, "scene", "--count", "12", "--base-size", "10")
	require.NoError(t, err)

	var snaps []sceneSnapshot
	require.NoError(t, stockjson.Unmarshal([]byte(out), &snaps))
	require.Len(t, snaps, 3)

	awake, attached, returned := snaps[0], snaps[1], snaps[2]

	assert.Equal(t, 10, awake.ContainerChildren)
	assert.Equal(t, 0, awake.ParentChildren)

	assert.Equal(t, 20, attached.Stats.Created)
	assert.Equal(t, 12, attached.ParentChildren)
	assert.Equal(t, 8, attached.ContainerChildren)

	assert.Equal(t, 0, returned.ParentChildren)
	assert.Equal(t, 20, returned.ContainerChildren)
	assert.Equal(t, 0, returned.Stats.InUse)
}

func TestSceneNegativeCount(t *testing.T) {
	_, err := execute(t, "scene", "--count", "-1")
	require.Error(t, err)
}

func TestSimulateWithProfiles(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "simulate", "--rounds", "2", "--burst", "3", "--profile-dir", dir, "--profile", "memory,mutex")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSimulateUnknownProfile(t *testing.T) {
	_, err := execute(t, "simulate", "--profile-dir", t.TempDir(), "--profile", "flame")
	require.Error(t, err)
}
