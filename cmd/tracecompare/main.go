// Package main runs the same scripted scene under two grid-traversal
// versions (or two remount rule sets) and reports how far the two runs'
// rider trajectories diverge, frame by frame. It directly exercises
// spec.md's testable scenario comparing grid V6.1 against V6.2: both are
// valid line-traversal rules, and a track authored for one can behave
// differently when replayed under the other.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/linerider/trackphysics/internal/engine"
	"github.com/linerider/trackphysics/internal/entity"
	"github.com/linerider/trackphysics/internal/geometry"
	"github.com/linerider/trackphysics/internal/physline"
	"github.com/linerider/trackphysics/internal/version"
)

// Config is the tool's flag-populated configuration.
type Config struct {
	Frames     int
	GridA      string
	GridB      string
	RemountA   string
	RemountB   string
	GroundY    float64
	OutputJSON string
}

// Result is the JSON document this tool prints: one divergence record per
// compared frame plus summary statistics over the whole run.
type Result struct {
	GridA    string            `json:"grid_a"`
	GridB    string            `json:"grid_b"`
	RemountA string            `json:"remount_a"`
	RemountB string            `json:"remount_b"`
	Frames   []FrameDivergence `json:"frames"`
	MeanDiff float64           `json:"mean_divergence"`
	RMSDiff  float64           `json:"rms_divergence"`
	MaxDiff  float64           `json:"max_divergence"`
	MaxFrame int               `json:"max_divergence_frame"`
}

// FrameDivergence is the Euclidean distance between run A's and run B's
// rider-0 points (contact and scarf alike) at a single frame, averaged
// across points.
type FrameDivergence struct {
	Frame      int     `json:"frame"`
	Divergence float64 `json:"divergence"`
}

func main() {
	cfg := parseFlags()

	result, err := runComparison(cfg)
	if err != nil {
		log.Fatalf("comparison failed: %v", err)
	}

	printResults(result)

	if cfg.OutputJSON != "" {
		if err := exportJSON(result, cfg.OutputJSON); err != nil {
			log.Printf("warning: failed to export JSON: %v", err)
		} else {
			log.Printf("results exported to: %s", cfg.OutputJSON)
		}
	}
}

func parseFlags() Config {
	cfg := Config{}
	flag.IntVar(&cfg.Frames, "frames", 200, "number of frames to compare")
	flag.StringVar(&cfg.GridA, "grid-a", "v6.1", "first run's grid traversal version")
	flag.StringVar(&cfg.GridB, "grid-b", "v6.2", "second run's grid traversal version")
	flag.StringVar(&cfg.RemountA, "remount-a", "comv2", "first run's remount rule set")
	flag.StringVar(&cfg.RemountB, "remount-b", "comv2", "second run's remount rule set")
	flag.Float64Var(&cfg.GroundY, "ground-y", 50, "y coordinate of the flat ground line both runs share")
	flag.StringVar(&cfg.OutputJSON, "json", "", "optional path to also write the result as a JSON file")
	printVersion := flag.Bool("version", false, "print the build version and exit")
	flag.Parse()
	if *printVersion {
		fmt.Printf("tracecompare %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		os.Exit(0)
	}
	return cfg
}

func runComparison(cfg Config) (*Result, error) {
	if cfg.Frames < 0 {
		return nil, fmt.Errorf("-frames must be non-negative")
	}

	gridA, err := parseGridVersion(cfg.GridA)
	if err != nil {
		return nil, fmt.Errorf("-grid-a: %w", err)
	}
	gridB, err := parseGridVersion(cfg.GridB)
	if err != nil {
		return nil, fmt.Errorf("-grid-b: %w", err)
	}
	remountA, err := parseRemountVersion(cfg.RemountA)
	if err != nil {
		return nil, fmt.Errorf("-remount-a: %w", err)
	}
	remountB, err := parseRemountVersion(cfg.RemountB)
	if err != nil {
		return nil, fmt.Errorf("-remount-b: %w", err)
	}

	statesA, err := runScene(gridA, remountA, cfg.GroundY, cfg.Frames)
	if err != nil {
		return nil, fmt.Errorf("run A: %w", err)
	}
	statesB, err := runScene(gridB, remountB, cfg.GroundY, cfg.Frames)
	if err != nil {
		return nil, fmt.Errorf("run B: %w", err)
	}

	diffs := make([]float64, len(statesA))
	frames := make([]FrameDivergence, len(statesA))
	maxDiff, maxFrame := 0.0, 0
	for frame := range statesA {
		d := meanPointDistance(statesA[frame].PointPositions(), statesB[frame].PointPositions())
		diffs[frame] = d
		frames[frame] = FrameDivergence{Frame: frame, Divergence: d}
		if d > maxDiff {
			maxDiff, maxFrame = d, frame
		}
	}

	mean := stat.Mean(diffs, nil)
	rms := floats.Norm(diffs, 2) / math.Sqrt(float64(len(diffs)))

	return &Result{
		GridA: cfg.GridA, GridB: cfg.GridB,
		RemountA: cfg.RemountA, RemountB: cfg.RemountB,
		Frames:   frames,
		MeanDiff: mean,
		RMSDiff:  rms,
		MaxDiff:  maxDiff,
		MaxFrame: maxFrame,
	}, nil
}

// runScene builds the shared flat-ground scene with a single default rider
// and returns each frame's state from 0 through frames, inclusive.
func runScene(grid engine.GridVersion, remount engine.RemountVersion, groundY float64, frames int) ([]*engine.EntityState, error) {
	eng := engine.New(grid)

	ground := physline.New(geometry.Line{
		P0: geometry.Point{X: -500, Y: groundY},
		P1: geometry.Point{X: 500, Y: groundY},
	}, false, false, false)
	eng.AddLine(ground)

	template := entity.BuildDefaultRider(remount)
	templateID := eng.RegisterEntityTemplate(template)
	if _, err := eng.AddEntity(templateID); err != nil {
		return nil, err
	}

	out := make([]*engine.EntityState, frames+1)
	for frame := 0; frame <= frames; frame++ {
		states, err := eng.ViewFrame(frame)
		if err != nil {
			return nil, err
		}
		out[frame] = states[0]
	}
	return out, nil
}

// meanPointDistance averages the Euclidean distance between corresponding
// points of two equal-length, identically-ordered position slices.
func meanPointDistance(a, b []geometry.Point) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	dists := make([]float64, len(a))
	for i := range a {
		dx := a[i].X - b[i].X
		dy := a[i].Y - b[i].Y
		dists[i] = floats.Norm([]float64{dx, dy}, 2)
	}
	return stat.Mean(dists, nil)
}

func printResults(r *Result) {
	fmt.Printf("grid A=%s (remount %s)  grid B=%s (remount %s)\n", r.GridA, r.RemountA, r.GridB, r.RemountB)
	fmt.Printf("frames compared: %d\n", len(r.Frames))
	fmt.Printf("mean divergence: %.6f\n", r.MeanDiff)
	fmt.Printf("rms divergence:  %.6f\n", r.RMSDiff)
	fmt.Printf("max divergence:  %.6f at frame %d\n", r.MaxDiff, r.MaxFrame)
}

func exportJSON(r *Result, path string) error {
	encoded, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, encoded, 0o644)
}

func parseGridVersion(s string) (engine.GridVersion, error) {
	switch s {
	case "v6.0":
		return engine.GridV6_0, nil
	case "v6.1":
		return engine.GridV6_1, nil
	case "v6.2":
		return engine.GridV6_2, nil
	default:
		return 0, fmt.Errorf("unknown grid version %q (want v6.0, v6.1, or v6.2)", s)
	}
}

func parseRemountVersion(s string) (engine.RemountVersion, error) {
	switch s {
	case "none":
		return engine.RemountNone, nil
	case "comv1":
		return engine.RemountComV1, nil
	case "comv2":
		return engine.RemountComV2, nil
	case "lra":
		return engine.RemountLRA, nil
	default:
		return 0, fmt.Errorf("unknown remount version %q (want none, comv1, comv2, or lra)", s)
	}
}
