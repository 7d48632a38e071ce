// Plan inspection tool: prints the windows, batches and per-rank partitions
// described by a YAML plan file.
package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/robert-malhotra/go-slicekit/slicekit"
)

type planFile struct {
	Shape      []shapeEntry    `yaml:"shape"`
	AxisLabels map[int]int     `yaml:"axis_labels"`
	Pattern    patternSpec     `yaml:"pattern"`
	Preview    []previewSpec   `yaml:"preview"`
	BatchSize  int             `yaml:"batch_size"`
	Ranks      int             `yaml:"ranks"`
	Padding    map[int]padSpec `yaml:"padding"`
	Uniform    bool            `yaml:"uniform_batches"`
}

// shapeEntry is either a concrete axis length or the string "var".
type shapeEntry struct {
	extent   int
	variable bool
}

func (e *shapeEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Value == "var" {
		e.variable = true
		return nil
	}
	return value.Decode(&e.extent)
}

type patternSpec struct {
	Core  []int `yaml:"core"`
	Slice []int `yaml:"slice"`
	Fixed []struct {
		Axis  int `yaml:"axis"`
		Value int `yaml:"value"`
	} `yaml:"fixed"`
}

type previewSpec struct {
	Start int `yaml:"start"`
	Stop  int `yaml:"stop"`
	Step  int `yaml:"step"`
	Chunk int `yaml:"chunk"`
}

type padSpec struct {
	Before int `yaml:"before"`
	After  int `yaml:"after"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/planview/main.go <plan.yaml>")
		os.Exit(1)
	}

	filename := os.Args[1]
	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Printf("ERROR: Failed to read plan file: %v\n", err)
		os.Exit(1)
	}

	var pf planFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		fmt.Printf("ERROR: Failed to parse plan file: %v\n", err)
		os.Exit(1)
	}

	plan, err := buildPlan(&pf)
	if err != nil {
		fmt.Printf("ERROR: Invalid plan: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("=== Plan %s ===\n\n", filename)
	fmt.Printf("Resolved shape: %v\n", plan.ResolvedShape())
	if primary, ok := plan.PrimaryAxis(); ok {
		fmt.Printf("Primary slice axis: %d\n", primary)
	}

	windows, err := plan.Windows()
	if err != nil {
		fmt.Printf("ERROR: Building windows: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Windows: %d\n", len(windows))

	batches, err := plan.GroupedWindows()
	if err != nil {
		fmt.Printf("ERROR: Grouping windows: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Batches: %d (batch size %d)\n\n", len(batches), plan.BatchSize())

	ranks := pf.Ranks
	if ranks < 1 {
		ranks = 1
	}
	for r := 0; r < ranks; r++ {
		owned, frames, err := plan.WindowsForRank(r, ranks)
		if err != nil {
			fmt.Printf("ERROR: Partitioning for rank %d: %v\n", r, err)
			os.Exit(1)
		}
		fmt.Printf("Rank %d: frames [%d, %d), %d batches\n", r, frames.Start, frames.Stop, len(owned))
		for _, w := range owned {
			fmt.Printf("  %s\n", w)
		}
	}
}

func buildPlan(pf *planFile) (*slicekit.Plan, error) {
	shape := make(slicekit.Shape, len(pf.Shape))
	for i, e := range pf.Shape {
		if e.variable {
			shape[i] = slicekit.Var
		} else {
			shape[i] = slicekit.Fixed(e.extent)
		}
	}

	pattern := slicekit.Pattern{Core: pf.Pattern.Core, Slice: pf.Pattern.Slice}
	for _, f := range pf.Pattern.Fixed {
		pattern.Fixed = append(pattern.Fixed, slicekit.FixedAxis{Axis: f.Axis, Value: f.Value})
	}

	preview := make(slicekit.Preview, len(pf.Preview))
	for i, a := range pf.Preview {
		step, chunk := a.Step, a.Chunk
		if step == 0 {
			step = 1
		}
		if chunk == 0 {
			chunk = 1
		}
		preview[i] = slicekit.AxisPreview{Start: a.Start, Stop: a.Stop, Step: step, Chunk: chunk}
	}

	opts := []slicekit.PlanOption{}
	if pf.BatchSize > 0 {
		opts = append(opts, slicekit.WithBatchSize(pf.BatchSize))
	}
	if len(pf.AxisLabels) > 0 {
		opts = append(opts, slicekit.WithLabelLengths(pf.AxisLabels))
	}
	if len(pf.Padding) > 0 {
		spec := make(slicekit.PadSpec, len(pf.Padding))
		for axis, p := range pf.Padding {
			spec[axis] = slicekit.AxisPad{Before: p.Before, After: p.After}
		}
		opts = append(opts, slicekit.WithPadding(spec))
	}
	if pf.Uniform {
		opts = append(opts, slicekit.WithUniformBatches())
	}

	return slicekit.NewPlan(shape, pattern, preview, opts...)
}
