package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henghenghahei849/gym-flock/trace"
)

const smallConfig = `
robots: 2
episode_length: 5
resolution: 2
max_nodes: 200
map:
  extent: 10
  cities: 0
routing:
  policy: greedy
trace:
  compression: lz4
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(smallConfig), 0o600))
	return path
}

func TestRun_WritesSummaryAndTrace(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "run.trace")
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"--config", writeConfig(t),
		"--episodes", "2",
		"--trace", tracePath,
		"--log-format", "json",
		"--log-level", "warn",
	}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "policy:      greedy")
	assert.Contains(t, stdout.String(), "episodes:    2")
	assert.Empty(t, stderr.String())

	f, err := os.Open(tracePath)
	require.NoError(t, err)
	defer f.Close()
	r, err := trace.NewReader(f)
	require.NoError(t, err)
	defer r.Close()
	recs, err := r.All()
	require.NoError(t, err)
	// two episodes of at most five steps each, each led by its reset record
	assert.GreaterOrEqual(t, len(recs), 4)
	assert.LessOrEqual(t, len(recs), 12)
	assert.True(t, recs[len(recs)-1].Done)
	require.NotNil(t, recs[0].Obs)
	assert.Equal(t, 0, recs[0].Step)
	assert.Equal(t, 0, recs[0].Obs.Step)
	assert.Nil(t, recs[0].Actions)
	resets := 0
	for _, rec := range recs {
		if rec.Step == 0 {
			resets++
		}
	}
	assert.Equal(t, 2, resets)
}

func TestRun_PolicyOverride(t *testing.T) {
	var stdout bytes.Buffer
	err := run(context.Background(), []string{"--config", writeConfig(t), "--policy", "random"}, &stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "policy:      random")
}

func TestRun_Errors(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"unknown policy", []string{"--policy", "teleport"}},
		{"bad log format", []string{"--log-format", "xml"}},
		{"bad log level", []string{"--log-level", "loud"}},
		{"zero episodes", []string{"--episodes", "0"}},
		{"extra argument", []string{"extra"}},
		{"unknown flag", []string{"--nope"}},
		{"missing config", []string{"--config", filepath.Join(t.TempDir(), "absent.yaml")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := run(context.Background(), tc.args, &bytes.Buffer{}, &bytes.Buffer{})
			assert.Error(t, err)
		})
	}
}

func TestRun_Help(t *testing.T) {
	var stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"--help"}, &bytes.Buffer{}, &stderr))
	assert.Contains(t, stderr.String(), "--episodes")
}
