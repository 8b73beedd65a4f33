package main

import "fmt"

type ProgramSpec struct {
	Name   string
	Suffix string
}

// Datalog programs known to the harness. Programs that need edge weights
// (shortest paths) read the "-w" dataset files.
var knownPrograms = map[string]ProgramSpec{
	"tc":    {Name: "tc"},
	"cc":    {Name: "cc"},
	"reach": {Name: "reach"},
	"sssp":  {Name: "sssp", Suffix: "-w"},
	"cspa":  {Name: "cspa"},
}

func LookupProgram(name string) (ProgramSpec, error) {
	spec, ok := knownPrograms[name]
	if !ok {
		return ProgramSpec{}, fmt.Errorf("unknown program '%v'", name)
	}
	return spec, nil
}

func LookupPrograms(names []string) ([]ProgramSpec, error) {
	programs := make([]ProgramSpec, 0, len(names))
	for _, name := range names {
		spec, err := LookupProgram(name)
		if err != nil {
			return nil, err
		}
		programs = append(programs, spec)
	}
	return programs, nil
}

// Cell is one (program, dataset, variant) unit of benchmark work.
type Cell struct {
	Program ProgramSpec
	Dataset string
	Variant ConfigVariant
}

func (c Cell) Name() string {
	return fmt.Sprintf("%v/%v/%v", c.Program.Name, c.Dataset, c.Variant)
}

// Cells enumerates the benchmark matrix: program outer, dataset inner,
// variant innermost.
func Cells(programs []ProgramSpec, datasets []string, variants []ConfigVariant) []Cell {
	cells := make([]Cell, 0, len(programs)*len(datasets)*len(variants))
	for _, program := range programs {
		for _, dataset := range datasets {
			for _, variant := range variants {
				cells = append(cells, Cell{Program: program, Dataset: dataset, Variant: variant})
			}
		}
	}
	return cells
}
