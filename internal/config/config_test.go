package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesBuiltinDefaultsWithoutYAMLOrFlags(t *testing.T) {
	cfg, err := Load("", []string{"-iwad", "doom.wad"})
	require.NoError(t, err)
	assert.Equal(t, "doom.wad", cfg.IWAD)
	assert.Equal(t, "E1M1", cfg.Warp)
	assert.Equal(t, 3, cfg.Skill)
	assert.Equal(t, 100, cfg.Turbo)
}

func TestLoadFlagsOverrideYAMLDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doomgo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("iwad: doom2.wad\nskill: 2\nwarp: MAP01\n"), 0o644))

	cfg, err := Load(path, []string{"-skill", "5"})
	require.NoError(t, err)
	assert.Equal(t, "doom2.wad", cfg.IWAD) // from YAML, not overridden
	assert.Equal(t, "MAP01", cfg.Warp)
	assert.Equal(t, 5, cfg.Skill) // CLI override wins
}

func TestLoadMissingYAMLFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), []string{"-iwad", "doom.wad"})
	require.NoError(t, err)
	assert.Equal(t, "doom.wad", cfg.IWAD)
}

func TestLoadRequiresIWAD(t *testing.T) {
	_, err := Load("", []string{})
	assert.Error(t, err)
}

func TestLoadRejectsOutOfRangeSkill(t *testing.T) {
	_, err := Load("", []string{"-iwad", "doom.wad", "-skill", "9"})
	assert.Error(t, err)
}

func TestLoadSplitsCommaSeparatedFiles(t *testing.T) {
	cfg, err := Load("", []string{"-iwad", "doom.wad", "-file", "a.wad,b.wad"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.wad", "b.wad"}, cfg.Files)
}
