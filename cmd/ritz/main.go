// Package main provides the Ritz framework CLI.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/ritz-ml/ritz/nn"
	"github.com/ritz-ml/ritz/pinn"
	"github.com/ritz-ml/ritz/tensor"
)

const version = "v0.1.0-dev"

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("Ritz %s\n", version)
			return
		case "demo":
			demo(os.Args[2:])
			return
		}
	}

	fmt.Println("Ritz - Physics-Informed Network Layers for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  demo       Evaluate a Fourier-feature network on a coordinate grid")
}

func demo(args []string) {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	seed := fs.Uint64("seed", 1, "random seed for initialization")
	points := fs.Int("points", 128, "number of grid points")
	width := fs.Int("width", 32, "hidden width")
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}
	if *points < 2 || *width < 2 || *width%2 != 0 {
		log.Error().Int("points", *points).Int("width", *width).
			Msg("need points >= 2 and an even width >= 2")
		os.Exit(1)
	}

	net := nn.NewChain[float64](
		nn.NewRandomFourierFeature[float64](1, *width, 5),
		nn.NewDense[float64](*width, *width, nn.Tanh[float64]()),
		nn.NewDense[float64](*width, 1, nn.Identity[float64]()),
	)
	model := pinn.New[float64](rand.New(rand.NewSource(*seed)), net)

	grid := make([]float64, *points)
	for i := range grid {
		grid[i] = float64(i) / float64(*points-1)
	}
	x := tensor.MustFromSlice(grid, tensor.Shape{1, *points})

	start := time.Now()
	u := model.Network().Call(x, model.InitParams())

	log.Info().
		Uint64("seed", *seed).
		Int("points", *points).
		Int("parameters", model.InitParams().NumParameters()).
		Str("output", u.Shape().String()).
		Dur("elapsed", time.Since(start)).
		Msg("forward evaluation")
}
