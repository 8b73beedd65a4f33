package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ConfigVariant selects which engine configuration template is materialized
// onto the canonical configuration path before a run.
type ConfigVariant int

const (
	VariantOptimized ConfigVariant = iota
	VariantBaseline
)

func (v ConfigVariant) String() string {
	if v == VariantOptimized {
		return "optimized"
	}
	return "baseline"
}

func ParseVariant(value string) (ConfigVariant, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "optimized", "opt":
		return VariantOptimized, nil
	case "baseline", "base":
		return VariantBaseline, nil
	}
	return 0, fmt.Errorf("unknown config variant '%v'", value)
}

func (p Paths) Template(variant ConfigVariant) string {
	if variant == VariantOptimized {
		return p.OptimizedTemplate
	}
	return p.BaselineTemplate
}

// SelectConfig copies the variant template onto the configuration path the
// engine reads at startup. The previous variant is overwritten; calling it
// twice with the same variant is a no-op for the file content.
func SelectConfig(paths Paths, variant ConfigVariant) error {
	template := paths.Template(variant)
	if _, err := os.Stat(template); os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", ErrConfigTemplateMissing, template)
	} else if err != nil {
		return err
	}
	Logger.Infof("select %v config: %v -> %v", variant, template, paths.ConfigPath)
	return copyFile(template, paths.ConfigPath)
}

func copyFile(src string, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer source.Close()
	target, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer target.Close()
	if _, err := io.Copy(target, source); err != nil {
		return fmt.Errorf("failed to copy %v to %v: %w", src, dst, err)
	}
	return nil
}
