package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildstyl3r/dustheat/internal/model"
)

func TestRunModels(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	config := filepath.Join(dir, "dust.toml")
	require.NoError(t, os.WriteFile(config, []byte(fmt.Sprintf(`
OutputDir = %q
NTemperatures = 21

[Models.reference]

[Models.large_grain]
GrainRadius = 0.1

[Models.broken]
GrainRadius = -1.0
`, out)), 0600))

	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	df := model.NewDataFlags(fs)
	require.NoError(t, fs.Parse([]string{"--transition"}))

	err := runModels(filepath.Join(dir, "dust"), 2, false, df)
	assert.ErrorContains(t, err, "1 of 3 models failed")

	for _, name := range []string{"reference", "large_grain"} {
		assert.FileExists(t, filepath.Join(out, name+"_lambda.csv"))
		assert.FileExists(t, filepath.Join(out, name+"_transition.csv"))
	}
	assert.NoFileExists(t, filepath.Join(out, "broken_lambda.csv"))
}

func TestRunModelsMissingConfig(t *testing.T) {
	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	df := model.NewDataFlags(fs)
	require.NoError(t, fs.Parse(nil))
	assert.Error(t, runModels(filepath.Join(t.TempDir(), "absent"), 1, false, df))
}
