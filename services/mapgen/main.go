// Command mapgen generates one simulated detection batch for a region and
// writes the standalone HTML map to disk. It is the offline counterpart of
// the API's map export endpoint, meant for cron jobs and demo artifacts.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/hreger/IllegalActScan/services/api/config"
	"github.com/hreger/IllegalActScan/services/api/render"
	"github.com/hreger/IllegalActScan/services/api/roi"
	"github.com/hreger/IllegalActScan/services/api/sim"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("mapgen failed")
	}
}

func run(log zerolog.Logger) error {
	regionID := flag.String("region", "", "region identifier (default: configured region)")
	count := flag.Int("count", -1, "detections to generate (default: draw from configured range)")
	seed := flag.Int64("seed", 0, "random seed (default: configured seed, else the clock)")
	out := flag.String("out", "detection_map.html", "output HTML path")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if *regionID == "" {
		*regionID = cfg.DefaultRegion
	}
	region, ok := roi.Lookup(*regionID)
	if !ok {
		return fmt.Errorf("unknown region: %s", *regionID)
	}

	if *seed == 0 {
		*seed = cfg.Seed
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	n := *count
	if n < 0 {
		n, err = sim.CountBetween(rng, cfg.MinCount, cfg.MaxCount)
		if err != nil {
			return err
		}
	}

	points, err := sim.Generate(rng, sim.Params{
		CenterLat:     region.CenterLat,
		CenterLon:     region.CenterLon,
		Count:         n,
		MinConfidence: cfg.MinConfidence,
		MaxConfidence: cfg.MaxConfidence,
		LatStdDev:     cfg.LatJitter,
		LonStdDev:     cfg.LonJitter,
	})
	if err != nil {
		return err
	}
	log.Info().Str("region", region.ID).Int("count", len(points)).Int64("seed", *seed).Msg("generated detections")

	page, err := render.MapPage(region, points)
	if err != nil {
		return err
	}

	if err := os.WriteFile(*out, []byte(page), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}
	log.Info().Str("path", *out).Msg("map written")
	return nil
}
