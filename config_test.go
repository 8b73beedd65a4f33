package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectConfigVariants(t *testing.T) {
	paths := testPaths(t, t.TempDir())

	require.NoError(t, SelectConfig(paths, VariantOptimized))
	content, err := os.ReadFile(paths.ConfigPath)
	require.NoError(t, err)
	require.Equal(t, "optimizer=on\n", string(content))

	require.NoError(t, SelectConfig(paths, VariantBaseline))
	content, err = os.ReadFile(paths.ConfigPath)
	require.NoError(t, err)
	require.Equal(t, "optimizer=off\n", string(content))
}

func TestSelectConfigIdempotent(t *testing.T) {
	paths := testPaths(t, t.TempDir())

	require.NoError(t, SelectConfig(paths, VariantOptimized))
	first, err := os.ReadFile(paths.ConfigPath)
	require.NoError(t, err)

	require.NoError(t, SelectConfig(paths, VariantOptimized))
	second, err := os.ReadFile(paths.ConfigPath)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestSelectConfigMissingTemplate(t *testing.T) {
	dir := t.TempDir()
	paths := Paths{
		ConfigPath:        filepath.Join(dir, "qsconfig.json"),
		OptimizedTemplate: filepath.Join(dir, "missing-opt.json"),
		BaselineTemplate:  filepath.Join(dir, "missing-base.json"),
	}
	err := SelectConfig(paths, VariantOptimized)
	require.ErrorIs(t, err, ErrConfigTemplateMissing)
	require.NoFileExists(t, paths.ConfigPath)
}

func TestParseVariant(t *testing.T) {
	variant, err := ParseVariant("Optimized")
	require.NoError(t, err)
	require.Equal(t, VariantOptimized, variant)

	variant, err = ParseVariant("baseline")
	require.NoError(t, err)
	require.Equal(t, VariantBaseline, variant)

	_, err = ParseVariant("turbo")
	require.Error(t, err)
}
