package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/littletsp/matrixio"
	"github.com/katalvlaran/littletsp/tsp"
)

// isolate points every XDG and LITTLETSP_* lookup at temp dirs.
func isolate(t *testing.T) (cacheHome string) {
	t.Helper()
	cacheHome = t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, name := range []string{
		"CONFIG", "CACHE_BACKEND", "CACHE_DIR", "CACHE_PATH", "CACHE_TTL",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "ADDR", "MAX_CITIES", "TIMEOUT",
	} {
		t.Setenv(envPrefix+name, "")
	}

	return cacheHome
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	c := New(&logs, LogInfo)
	c.out = &out

	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func writeInstance(t *testing.T, name string, rows [][]int64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	inst := &matrixio.Instance{Name: "test", Matrix: tsp.MustFromInts(rows, -1)}
	require.NoError(t, matrixio.WriteFile(path, inst))

	return path
}

var fiveCityRows = [][]int64{
	{-1, 10, 8, 19, 12},
	{10, -1, 20, 6, 3},
	{8, 20, -1, 4, 2},
	{19, 6, 4, -1, 7},
	{12, 3, 2, 7, -1},
}

func TestSolveCommand(t *testing.T) {
	isolate(t)
	path := writeInstance(t, "five.toml", fiveCityRows)

	out, err := runCLI(t, "solve", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Optimal cost")
	assert.Contains(t, out, "32")
	assert.Contains(t, out, "0 → 2 → 3 → 4 → 1 → 0")
	assert.Contains(t, out, "0 → 1 → 4 → 3 → 2 → 0")
	assert.Contains(t, out, iconFresh)

	out, err = runCLI(t, "solve", path)
	require.NoError(t, err)
	assert.Contains(t, out, iconCached)
}

func TestSolveCommand_JSONAndStart(t *testing.T) {
	isolate(t)
	path := writeInstance(t, "five.yaml", fiveCityRows)

	out, err := runCLI(t, "solve", path, "--json", "--no-cache", "--start", "3", "--verify")
	require.NoError(t, err)

	var got solveOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, int64(32), got.Cost)
	assert.Equal(t, 5, got.Cities)
	assert.Equal(t, "test", got.Name)
	assert.False(t, got.Cached)
	assert.True(t, got.Verified)
	require.Len(t, got.Solutions, 2)
	assert.Equal(t, []int{3, 4, 1, 0, 2}, got.Solutions[0].Path)
}

func TestSolveCommand_Verify(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, "solve", writeInstance(t, "five.json", fiveCityRows), "--verify")
	require.NoError(t, err)
	assert.Contains(t, out, "Verified with Held-Karp")
}

func TestSolveCommand_ExplicitFormat(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "matrix.dat")
	require.NoError(t, os.WriteFile(path, []byte("INF 3\n4 INF\n"), 0644))

	out, err := runCLI(t, "solve", path, "--format", "text", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"cost": 7`)

	_, err = runCLI(t, "solve", path, "--format", "csv")
	require.ErrorIs(t, err, matrixio.ErrUnknownFormat)
}

func TestSolveCommand_Errors(t *testing.T) {
	isolate(t)
	closed := writeInstance(t, "closed.toml", [][]int64{
		{-1, 1, 1},
		{-1, -1, 1},
		{-1, 1, -1},
	})
	_, err := runCLI(t, "solve", closed)
	require.ErrorIs(t, err, tsp.ErrInfeasible)

	_, err = runCLI(t, "solve", writeInstance(t, "five.toml", fiveCityRows), "--start", "9")
	require.ErrorIs(t, err, tsp.ErrStartOutOfRange)

	_, err = runCLI(t, "solve", filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = runCLI(t, "solve")
	require.Error(t, err)
}

func TestSolveCommand_SQLiteBackend(t *testing.T) {
	isolate(t)
	t.Setenv(envPrefix+"CACHE_BACKEND", "sqlite")
	t.Setenv(envPrefix+"CACHE_PATH", filepath.Join(t.TempDir(), "results.db"))
	path := writeInstance(t, "five.toml", fiveCityRows)

	_, err := runCLI(t, "solve", path)
	require.NoError(t, err)
	out, err := runCLI(t, "solve", path)
	require.NoError(t, err)
	assert.Contains(t, out, iconCached)
}

func TestGenCommand(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "gen.toml")

	out, err := runCLI(t, "gen", "--kind", "sparse", "-n", "7", "--seed", "3", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Generated sparse instance with 7 cities")
	assert.Contains(t, out, "littletsp solve "+path)

	inst, err := matrixio.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 7, inst.Matrix.Size())
	assert.Equal(t, "sparse-7", inst.Name)

	// Same seed, same instance.
	again := filepath.Join(t.TempDir(), "again.toml")
	_, err = runCLI(t, "gen", "--kind", "sparse", "-n", "7", "--seed", "3", "-o", again)
	require.NoError(t, err)
	inst2, err := matrixio.ReadFile(again)
	require.NoError(t, err)
	assert.Equal(t, inst.Matrix.Rows(), inst2.Matrix.Rows())
}

func TestGenCommand_Stdout(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, "gen", "--kind", "uniform", "-n", "3", "--min", "5", "--format", "json", "--name", "flat")
	require.NoError(t, err)

	inst, err := matrixio.Read(bytes.NewBufferString(out), matrixio.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "flat", inst.Name)
	assert.Equal(t, tsp.Finite(5), inst.Matrix.At(0, 1))

	_, err = runCLI(t, "gen", "--kind", "spiral")
	require.Error(t, err)
	_, err = runCLI(t, "gen", "--min", "10", "--max", "1")
	require.Error(t, err)
}

func TestRenderCommand(t *testing.T) {
	isolate(t)
	path := writeInstance(t, "five.toml", fiveCityRows)
	dot := filepath.Join(t.TempDir(), "tour.dot")

	out, err := runCLI(t, "render", path, "--format", "dot", "-o", dot)
	require.NoError(t, err)
	assert.Contains(t, out, "Rendered tour of cost 32")

	data, err := os.ReadFile(dot)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph G {")
	assert.Contains(t, string(data), `0 -> 2 [label="8", penwidth=2.5`)

	_, err = runCLI(t, "render", path, "--format", "gif")
	require.Error(t, err)
}

func TestCacheCommands(t *testing.T) {
	cacheHome := isolate(t)

	out, err := runCLI(t, "cache", "path")
	require.NoError(t, err)
	assert.Contains(t, out, "file")
	assert.Contains(t, out, filepath.Join(cacheHome, appName))

	out, err = runCLI(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cache is empty")

	_, err = runCLI(t, "solve", writeInstance(t, "five.toml", fiveCityRows))
	require.NoError(t, err)
	out, err = runCLI(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 1 cached entry")

	t.Setenv(envPrefix+"CACHE_BACKEND", "none")
	out, err = runCLI(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Caching is disabled")
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "version: dev")

	out, err = runCLI(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "littletsp version dev")
}

func TestConfigFlag(t *testing.T) {
	isolate(t)
	cfg := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[cache]\nbackend = \"none\"\n"), 0644))

	out, err := runCLI(t, "--config", cfg, "cache", "path")
	require.NoError(t, err)
	assert.Contains(t, out, "none")

	_, err = runCLI(t, "--config", filepath.Join(t.TempDir(), "absent.toml"), "version")
	require.Error(t, err)
}
