package main

import (
	"fmt"
	"os"
	"path"
)

// DatasetFile resolves the physical dataset file for a program: weighted
// programs carry a suffix selecting the edge-weighted variant of the file.
func DatasetFile(paths Paths, dataset string, suffix string) string {
	return path.Join(paths.DatasetDir, dataset, fmt.Sprintf("%v%v.csv", dataset, suffix))
}

// StageInput copies the dataset file onto the canonical input path the engine
// reads. A missing source file fails only the cell that needed it.
func StageInput(paths Paths, dataset string, suffix string) error {
	source := DatasetFile(paths, dataset, suffix)
	if _, err := os.Stat(source); os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", ErrDatasetFileMissing, source)
	} else if err != nil {
		return err
	}
	Logger.Infof("stage input: %v -> %v", source, paths.InputPath)
	return copyFile(source, paths.InputPath)
}
