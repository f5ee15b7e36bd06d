// Package generator writes batches of .npy files filled with uniformly
// distributed random values, splitting a target total volume into
// fixed-size files.
//
// Quick start:
//
//	cfg := generator.DefaultConfig()
//	cfg.TotalSize = 100 * generator.MiB
//	g, err := generator.New(cfg)
//	summary, err := g.Run()
package generator
