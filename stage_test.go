package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStageInputCopyFidelity(t *testing.T) {
	paths := testPaths(t, t.TempDir())

	require.NoError(t, StageInput(paths, "wiki", ""))
	staged, err := os.ReadFile(paths.InputPath)
	require.NoError(t, err)
	source, err := os.ReadFile(DatasetFile(paths, "wiki", ""))
	require.NoError(t, err)
	require.Equal(t, source, staged)
}

func TestStageInputWeightedSuffix(t *testing.T) {
	paths := testPaths(t, t.TempDir())

	require.NoError(t, StageInput(paths, "twitter", "-w"))
	staged, err := os.ReadFile(paths.InputPath)
	require.NoError(t, err)
	require.Equal(t, "1,2,0.5 # twitter weighted\n", string(staged))
}

func TestStageInputOverwritesPreviousCell(t *testing.T) {
	paths := testPaths(t, t.TempDir())

	require.NoError(t, StageInput(paths, "wiki", ""))
	require.NoError(t, StageInput(paths, "twitter", ""))
	staged, err := os.ReadFile(paths.InputPath)
	require.NoError(t, err)
	require.Equal(t, "1,2 # twitter\n", string(staged))
}

func TestStageInputMissingDataset(t *testing.T) {
	paths := testPaths(t, t.TempDir())

	err := StageInput(paths, "ghost", "")
	require.ErrorIs(t, err, ErrDatasetFileMissing)
}
