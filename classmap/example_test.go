package classmap_test

import (
	"fmt"

	"github.com/katalvlaran/stratify/classmap"
)

// ExampleCompute derives class counts and proportions from a small map
// whose value 255 marks pixels outside the study area.
func ExampleCompute() {
	g, _ := classmap.NewGrid([][]int{
		{1, 1, 2, 255},
		{3, 1, 2, 255},
	})
	stats, _ := classmap.Compute(g, classmap.MaskValue(255))

	fmt.Println("eligible:", stats.Eligible, "masked:", stats.Masked)
	for _, c := range stats.Classes {
		fmt.Printf("class %d: %d px (%.3f)\n", c.Code, c.PixelCount, c.Proportion)
	}

	// Output:
	// eligible: 6 masked: 2
	// class 1: 3 px (0.500)
	// class 2: 2 px (0.333)
	// class 3: 1 px (0.167)
}

// ExamplePatches counts contiguous patches of each class.
func ExamplePatches() {
	g, _ := classmap.NewGrid([][]int{
		{1, 1, 2},
		{2, 1, 2},
		{2, 2, 1},
	})
	ps, _ := classmap.Patches(g, classmap.NoMask(), classmap.Conn4)
	for _, p := range ps {
		fmt.Printf("class %d: %d patches, largest %d\n", p.Code, p.Patches, p.Largest)
	}

	// Output:
	// class 1: 2 patches, largest 3
	// class 2: 2 patches, largest 3
}
