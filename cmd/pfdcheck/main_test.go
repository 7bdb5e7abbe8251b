package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/feedback"
)

// problemsDir is resolved before any test changes the working directory
var problemsDir, problemsDirErr = filepath.Abs(filepath.Join("..", "..", "examples", "problems"))

// problem returns the absolute path of a sample problem
func problem(t *testing.T, name string) string {
	t.Helper()
	require.NoError(t, problemsDirErr)
	return filepath.Join(problemsDir, name)
}

// run executes pfdcheck from an empty directory and returns stdout
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runAll(t, args...)
	return out, err
}

// runAll is run that also returns stderr
func runAll(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	cmd := rootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

// TestValidate_Samples runs every sample problem
func TestValidate_Samples(t *testing.T) {
	tests := []struct {
		file  string
		key   string
		valid bool
	}{
		{"separator.yaml", "Solvable", true},
		{"heater.yaml", "Solvable", true},
		{"mixer_splitter.yaml", "Solvable", true},
		{"disconnected.yaml", "PFD_not_connected", false},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			out, err := run(t, "validate", problem(t, tt.file))
			if tt.valid {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, errInvalid)
			}
			assert.Contains(t, out, tt.key)
		})
	}
}

// TestValidate_JSON emits a machine-readable report
func TestValidate_JSON(t *testing.T) {
	out, err := run(t, "validate", "--format", "json", problem(t, "separator.yaml"))
	require.NoError(t, err)

	var got validateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.Valid)
	assert.NotEmpty(t, got.ID)
	require.Len(t, got.Results, 1)
	assert.Equal(t, feedback.Solvable, got.Results[0].Key)
	assert.Equal(t, feedback.Info, got.Results[0].Severity)
	assert.Contains(t, got.Results[0].Message, "Congratulations")
}

// TestValidate_MetricsFile writes the run to a textfile
func TestValidate_MetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pfdcheck.prom")
	_, err := run(t, "validate", "--metrics-file", path, problem(t, "separator.yaml"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `pfdcheck_validation_runs_total{outcome="valid"} 1`)
	assert.Contains(t, string(data), "pfdcheck_lattice_graphs")
}

// TestValidate_ConfigFile takes the output format from --config
func TestValidate_ConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "pfdcheck.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("format: json\n"), 0o600))

	out, err := run(t, "validate", "--config", cfg, problem(t, "separator.yaml"))
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)), "expected JSON output, got %q", out)
}

// TestValidate_Errors covers unreadable input and bad flags
func TestValidate_Errors(t *testing.T) {
	_, err := run(t, "validate", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, errInvalid)

	_, err = run(t, "validate", "--format", "xml", problem(t, "separator.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config.format")

	_, err = run(t, "validate")
	require.Error(t, err)
}

// TestValidate_Batch validates several files and summarises them
func TestValidate_Batch(t *testing.T) {
	out, err := run(t, "validate", "-w", "2", problem(t, "separator.yaml"), problem(t, "disconnected.yaml"))
	require.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "PFD_not_connected")
	assert.Contains(t, out, "2 files: 1 valid, 1 invalid, 0 failed")

	missing := filepath.Join(t.TempDir(), "missing.yaml")
	out, err = run(t, "validate", "--format", "json", problem(t, "heater.yaml"), missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files")

	var got []struct {
		File  string `json:"file"`
		Valid bool   `json:"valid"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.True(t, got[0].Valid)
	assert.Equal(t, missing, got[1].File)
	assert.NotEmpty(t, got[1].Error)
}

// TestAbstract prints the lattice level by level
func TestAbstract(t *testing.T) {
	out, err := run(t, "abstract", problem(t, "separator.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "Level 1")
	assert.Contains(t, out, "{S}  in: m1  out: m2 m3")

	out, err = run(t, "abstract", "--format", "json", problem(t, "mixer_splitter.yaml"))
	require.NoError(t, err)
	var subgraphs []subgraphOutput
	require.NoError(t, json.Unmarshal([]byte(out), &subgraphs))
	require.Len(t, subgraphs, 3)
	assert.Equal(t, 2, subgraphs[2].Level)
	assert.ElementsMatch(t, []string{"M", "P"}, subgraphs[2].Units)
	assert.Equal(t, []string{"m1", "m2"}, subgraphs[2].Incoming)
}

// TestAbstract_Disconnected lists each connected group of units
func TestAbstract_Disconnected(t *testing.T) {
	out, errOut, err := runAll(t, "abstract", problem(t, "disconnected.yaml"))
	require.NoError(t, err)
	assert.Contains(t, errOut, "diagram is not connected: {S} {R}")
	assert.Contains(t, out, "subgraphs")

	_, errOut, err = runAll(t, "abstract", problem(t, "separator.yaml"))
	require.NoError(t, err)
	assert.NotContains(t, errOut, "not connected")
}

// TestCompounds filters the catalog by element
func TestCompounds(t *testing.T) {
	out, err := run(t, "compounds", "--element", "carbon")
	require.NoError(t, err)
	assert.Contains(t, out, "ethanol")
	assert.NotContains(t, out, "water")

	out, err = run(t, "compounds", "--format", "json")
	require.NoError(t, err)
	var compounds []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &compounds))
	assert.NotEmpty(t, compounds)
}
