package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runTraced(t, args...)
	return out, err
}

// runTraced returns the command output and the trace output separately.
func runTraced(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, trace bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&trace)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), trace.String(), err
}

var planar = filepath.Join("testdata", "planar2r.yaml")

func TestPosesCommand(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	out, err := run(t, "poses", "--chain", planar, "--config", "90,-90")
	require.NoError(t, err)
	var result posesOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &result))
	assert.Equal(t, "planar-2r", result.Chain)
	require.Len(t, result.Frames, 2)
	assert.InDeltaSlice(t, []float64{0, 15, 0}, result.Frames[0].Origin[:], 1e-9)
	assert.InDeltaSlice(t, []float64{10, 15, 0}, result.Frames[1].Origin[:], 1e-9)
	assert.Nil(t, result.Frames[0].Matrix)
}

func TestPosesCommandJSON(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	out, err := run(t, "poses", "--chain", planar, "--config", "0,0", "--matrix", "--format", "json")
	require.NoError(t, err)
	var result posesOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.NotNil(t, result.Frames[1].Matrix)
	assert.InDelta(t, 25.0, result.Frames[1].Matrix[0][3], 1e-9)
}

func TestPosesCommandErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := run(t, "poses", "--chain", planar, "--config", "1,2,3")
	assert.Error(t, err)
	_, err = run(t, "poses", "--config", "1,2")
	assert.Error(t, err)
	_, err = run(t, "poses", "--chain", planar, "--config", "1,2", "--format", "xml")
	assert.Error(t, err)
}

func TestTraceLevelReachesPackageTracers(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	out, trace, err := runTraced(t, "poses", "--chain", planar, "--config", "90,-90", "--trace", "Debug")
	require.NoError(t, err)
	var result posesOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &result))
	assert.Len(t, result.Frames, 2)
	assert.Equal(t, 2, strings.Count(trace, "→ origin"), "one debug line per joint expected, got:\n%s", trace)
	assert.Contains(t, trace, "DEBUG")
	assert.Contains(t, trace, "decoded chain description")

	// back to the default level, debug output has to vanish again
	_, trace, err = runTraced(t, "poses", "--chain", planar, "--config", "90,-90")
	require.NoError(t, err)
	assert.NotContains(t, trace, "→ origin")
}

func TestTrajectoryCommand(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	out, err := run(t, "trajectory", "--chain", planar, "--from", "0,0", "--to", "90,0", "--steps", "2")
	require.NoError(t, err)
	var samples []sampleOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &samples))
	require.Len(t, samples, 3)
	assert.Equal(t, []float64{45, 0}, samples[1].Configuration)
	assert.InDeltaSlice(t, []float64{25, 0, 0}, samples[0].Tip[:], 1e-9)
	assert.InDeltaSlice(t, []float64{0, 25, 0}, samples[2].Tip[:], 1e-9)

	out, err = run(t, "trajectory", "--chain", planar, "--from", "0,0", "--to", "90,90", "--steps", "3", "--staged")
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal([]byte(out), &samples))
	assert.Len(t, samples, 7)

	_, err = run(t, "trajectory", "--chain", planar, "--from", "0,0", "--to", "90,0", "--steps", "0")
	assert.Error(t, err)
}

func TestScaraCommand(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	out, err := run(t, "scara", "--theta1", "0", "--workspace", "2000")
	require.NoError(t, err)
	var result scaraOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &result))
	assert.Equal(t, []float64{0, 64, 0, 0}, result.Configuration)
	require.NotNil(t, result.PlateInside)
	assert.True(t, *result.PlateInside)
	names := make([]string, len(result.Features))
	for i, f := range result.Features {
		names[i] = f.Name
	}
	assert.Contains(t, names, "piston-base")
	assert.Contains(t, names, "plate-marker")

	out, err = run(t, "scara", "--theta1", "0", "--workspace", "1000")
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal([]byte(out), &result))
	assert.False(t, *result.PlateInside)

	_, err = run(t, "scara", "--params", filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)
}
