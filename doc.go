// Package stratify draws stratified random samples from classified maps,
// the sample design behind accuracy assessment of land-cover products.
//
// 🚀 What is stratify?
//
//	A small toolkit that takes a categorical raster and:
//		• counts every class among eligible (non no-data) pixels
//		• splits a total sample size across classes (proportional, equal, user)
//		  with an exact-sum guarantee
//		• draws distinct, reproducible pixel locations inside each class
//
// ✨ Why stratify?
//
//   - Deterministic: a recorded seed replays the same draw
//   - Explicit lifecycle: a Design refuses out-of-order calls
//   - Pure Go: TIFF decoding, SQLite and plotting without cgo
//
// Packages:
//
//	classmap/    Grid, NoData, class statistics, strata and patches
//	allocation/  Policy and Allocate (proportional, equal, user specified)
//	draw/        Strategy, Seed and seeded PCG streams
//	design/      Design state machine and SampleSet
//	raster/      TIFF and in-memory band sources, PAM category names
//	labels/      category name reconciliation
//	report/      map table and allocation chart
//	export/      CSV writer
//	store/       SQLite run store
//	config/      JSON sampler configuration
//	cmd/stratify  command-line front end
//
// Quick example:
//
//	g, _ := classmap.NewGrid([][]int{{1, 1, 2, 255}})
//	d, _ := design.New(g, classmap.MaskValue(255))
//	d.Allocate(2, allocation.Equal, nil)
//	set, _ := d.Sample(draw.Fixed(42))
//	for _, s := range set.Flatten() {
//		fmt.Println(s.Code, s.Row, s.Col)
//	}
package stratify
