// Package parallel provides chunked worker loops for elementwise kernels.
//
// The tensor package funnels its Map and same-shape binary kernels through
// For, so one Config gates parallelism for the whole module.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how For splits an index range across goroutines.
type Config struct {
	Enabled      bool // Run chunks on worker goroutines when true.
	NumWorkers   int  // Upper bound on concurrent workers.
	MinChunkSize int  // Smallest range worth a goroutine.
}

// DefaultConfig sizes the worker pool from the CPU count. The chunk floor
// is high because per-item work in an elementwise kernel is a few float ops.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 4096,
	}
}

// For calls f(i) for every i in [0, n), possibly from multiple goroutines.
// Iterations must be independent: f typically writes out[i] and nothing else.
// Ranges too small to fill two chunks run sequentially on the caller.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || cfg.NumWorkers < 2 || cfg.MinChunkSize < 1 || n < 2*cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	workers := min(cfg.NumWorkers, n/cfg.MinChunkSize)
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}
