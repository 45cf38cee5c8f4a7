// Package main searches for spring constants that settle an ornament quickly
// without oscillating, using Nelder-Mead over stiffness and damping.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/evergreen/components"
	"github.com/pthm-cable/evergreen/systems"
)

const (
	dt        = 1.0 / 60.0
	maxTicks  = 3600 // one simulated minute
	holdTicks = 30   // must stay inside tolerance this long to count as settled
)

// settle simulates one spring from a fixed offset. It returns the first tick
// after which the position stays within tol for holdTicks, and the residual
// distance at the end of the run for tie-breaking between non-settlers.
func settle(stiffness, damping, mass, distance, tol float32) (int, float32) {
	kin := components.Kinetics{Pos: components.Vec3{X: distance}}
	dest := components.Vec3{}
	p := systems.SpringParams{Stiffness: stiffness, Damping: damping, MaxSpeed: 1000}

	held := 0
	settled := maxTicks
	for tick := 1; tick <= maxTicks; tick++ {
		systems.StepSpring(&kin, dest, mass, p, false, 0, 0, dt)
		if kin.Pos.Length() <= tol {
			held++
			if held >= holdTicks && settled == maxTicks {
				settled = tick - holdTicks + 1
			}
		} else {
			held = 0
			settled = maxTicks
		}
	}
	return settled, kin.Pos.Length()
}

func main() {
	mass := flag.Float64("mass", 1.0, "Ornament mass")
	distance := flag.Float64("distance", 10.0, "Initial offset from the destination")
	tol := flag.Float64("tol", 0.05, "Settle tolerance in world units")
	initK := flag.Float64("stiffness", 0.05, "Starting stiffness")
	initD := flag.Float64("damping", 0.9, "Starting damping")
	trace := flag.String("trace", "", "CSV file logging every evaluation (empty = none)")
	flag.Parse()

	var traceWriter *csv.Writer
	if *trace != "" {
		f, err := os.Create(*trace)
		if err != nil {
			log.Fatalf("failed to create trace file: %v", err)
		}
		defer f.Close()
		traceWriter = csv.NewWriter(f)
		defer traceWriter.Flush()
		traceWriter.Write([]string{"eval", "stiffness", "damping", "cost"})
	}

	evalCount := 0
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			k, d := x[0], x[1]
			evalCount++

			var cost float64
			// Constants outside (0,1) never settle; push the search back in.
			if k <= 0 || k >= 1 || d <= 0 || d >= 1 {
				cost = 1e6
			} else {
				ticks, residual := settle(float32(k), float32(d),
					float32(*mass), float32(*distance), float32(*tol))
				cost = float64(ticks) + float64(residual)
			}

			if traceWriter != nil {
				traceWriter.Write([]string{
					strconv.Itoa(evalCount),
					strconv.FormatFloat(k, 'f', 6, 64),
					strconv.FormatFloat(d, 'f', 6, 64),
					strconv.FormatFloat(cost, 'f', 4, 64),
				})
				traceWriter.Flush()
			}
			return cost
		},
	}

	result, err := optimize.Minimize(problem, []float64{*initK, *initD}, nil, &optimize.NelderMead{})
	if err != nil {
		log.Fatalf("optimization failed: %v", err)
	}

	k, d := result.X[0], result.X[1]
	ticks, residual := settle(float32(k), float32(d),
		float32(*mass), float32(*distance), float32(*tol))

	fmt.Printf("stiffness: %.4f\n", k)
	fmt.Printf("damping:   %.4f\n", d)
	if ticks < maxTicks {
		fmt.Printf("settles in %.2fs from %.1f units (mass %.2f)\n",
			float64(ticks)*dt, *distance, *mass)
	} else {
		fmt.Printf("did not settle within %.0fs (residual %.3f)\n",
			float64(maxTicks)*dt, residual)
	}
}
