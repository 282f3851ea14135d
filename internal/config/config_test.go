package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()
	assert.Equal(t, DefaultTestFraction, cfg.Data.TestFraction)
	assert.Equal(t, int64(DefaultSeed), cfg.Data.Seed)
	assert.Equal(t, "iris-pipeline", cfg.Tracking.Experiment)
	assert.NoError(t, cfg.Check())
}

func TestLoad_File(t *testing.T) {

	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
data:
  test_fraction: 0.3
  random_seed: 7
tracking:
  url: http://localhost:5000
  experiment: iris-dev
artifact:
  dir: /tmp/artifacts
  name: best
`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 0.3, cfg.Data.TestFraction)
	assert.Equal(t, int64(7), cfg.Data.Seed)
	assert.Equal(t, "http://localhost:5000", cfg.Tracking.URL)
	assert.Equal(t, "iris-dev", cfg.Tracking.Experiment)
	assert.Equal(t, "best", cfg.Artifact.Name)
}

func TestLoad_InvalidFraction(t *testing.T) {

	path := filepath.Join(t.TempDir(), "config.yml")
	assert.NoError(t, os.WriteFile(path, []byte("data:\n  test_fraction: 1.2\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, InvalidErr))
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv(TrackerEnv, "http://tracker:5000")

	cfg, err := Load("")
	assert.NoError(t, err)
	assert.Equal(t, "http://tracker:5000", cfg.Tracking.URL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
