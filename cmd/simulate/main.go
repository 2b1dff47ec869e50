// Package main provides a minimal CLI that drives the trackphysics engine
// directly through its public API: build a small scripted scene, advance
// it to a target frame, and print a JSON summary of every entity's state.
// No track-file parser is implemented here or anywhere in this module —
// scene construction goes straight through Engine's AddLine/AddEntity
// calls, the same seam a future .trk/.sol/.json decoder would use via
// engine.FromTrack.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/linerider/trackphysics/internal/engine"
	"github.com/linerider/trackphysics/internal/entity"
	"github.com/linerider/trackphysics/internal/geometry"
	"github.com/linerider/trackphysics/internal/physline"
	"github.com/linerider/trackphysics/internal/version"
)

var (
	frames       = flag.Int("frames", 120, "number of frames to advance the simulation")
	gridVersion  = flag.String("grid", "v6.2", "line traversal rule: v6.0, v6.1, v6.2")
	remount      = flag.String("remount", "comv2", "remount rule set: none, comv1, comv2, lra")
	groundY      = flag.Float64("ground-y", 50, "y coordinate of the flat ground line")
	outputJSON   = flag.String("json", "", "optional path to also write the summary as a JSON file")
	printVersion = flag.Bool("version", false, "print the build version and exit")
)

// summary is the JSON document printed to stdout: one run identifier plus
// every entity's state at the requested frame.
type summary struct {
	RunID   string          `json:"run_id"`
	Frame   int             `json:"frame"`
	Grid    string          `json:"grid_version"`
	Remount string          `json:"remount_version"`
	Riders  []riderSnapshot `json:"riders"`
}

type riderSnapshot struct {
	EntityID   uint32          `json:"entity_id"`
	MountPhase string          `json:"mount_phase"`
	SledIntact bool            `json:"sled_intact"`
	Points     []pointSnapshot `json:"points"`
}

type pointSnapshot struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	Contact bool    `json:"contact"`
}

func main() {
	flag.Parse()

	if *printVersion {
		fmt.Printf("simulate %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	grid, err := parseGridVersion(*gridVersion)
	if err != nil {
		log.Fatalf("invalid -grid: %v", err)
	}
	remountVersion, err := parseRemountVersion(*remount)
	if err != nil {
		log.Fatalf("invalid -remount: %v", err)
	}
	if *frames < 0 {
		log.Fatal("-frames must be non-negative")
	}

	eng := engine.New(grid)

	ground := physline.New(geometry.Line{
		P0: geometry.Point{X: -500, Y: *groundY},
		P1: geometry.Point{X: 500, Y: *groundY},
	}, false, false, false)
	eng.AddLine(ground)

	template := entity.BuildDefaultRider(remountVersion)
	templateID := eng.RegisterEntityTemplate(template)
	riderID, err := eng.AddEntity(templateID)
	if err != nil {
		log.Fatalf("failed to place rider: %v", err)
	}

	states, err := eng.ViewFrame(*frames)
	if err != nil {
		log.Fatalf("simulation failed: %v", err)
	}

	out := summary{
		RunID:   uuid.NewString(),
		Frame:   *frames,
		Grid:    *gridVersion,
		Remount: *remount,
		Riders:  make([]riderSnapshot, 0, len(states)),
	}
	for _, state := range states {
		out.Riders = append(out.Riders, snapshotRider(riderID, template, state))
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode summary: %v", err)
	}
	fmt.Println(string(encoded))

	if *outputJSON != "" {
		if err := os.WriteFile(*outputJSON, encoded, 0o644); err != nil {
			log.Fatalf("failed to write %s: %v", *outputJSON, err)
		}
		log.Printf("wrote summary to %s", *outputJSON)
	}
}

func snapshotRider(id engine.EntityID, template *entity.SkeletonTemplate, state *engine.EntityState) riderSnapshot {
	ids := template.Points()
	points := make([]pointSnapshot, len(ids))
	for i, pid := range ids {
		pt := template.Point(pid)
		st := state.PointState(pid)
		points[i] = pointSnapshot{
			X: st.Position().X, Y: st.Position().Y,
			VX: st.Velocity().X, VY: st.Velocity().Y,
			Contact: pt.IsContact(),
		}
	}
	return riderSnapshot{
		EntityID:   uint32(id),
		MountPhase: mountPhaseLabel(state.MountPhase()),
		SledIntact: state.SledIntact(),
		Points:     points,
	}
}

func mountPhaseLabel(phase entity.MountPhase) string {
	switch {
	case phase.IsMounted():
		return "mounted"
	case phase.IsDismounting():
		return "dismounting"
	case phase.IsDismounted():
		return "dismounted"
	case phase.IsRemounting():
		return "remounting"
	default:
		return "unknown"
	}
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
