package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/warelayout/zonemap/internal/config"
	"github.com/warelayout/zonemap/internal/imaging"
	"github.com/warelayout/zonemap/internal/pipeline"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// planResult pairs one input plan with its zone map for JSON output.
type planResult struct {
	Plan    string            `json:"plan"`
	Info    *imaging.PlanInfo `json:"info"`
	ZoneMap *pipeline.ZoneMap `json:"zone_map"`
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("zonemap %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	configPath := flag.String("config", "", "YAML configuration file (defaults apply when omitted)")
	jobs := flag.Int("jobs", 4, "maximum plans processed concurrently")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Usage = usage
	flag.Parse()

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	paths := flag.Args()
	if len(paths) == 0 {
		usage()
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadFile(*configPath)
		if err != nil {
			log.Fatalf("Config error: %v", err)
		}
	}

	if *verbose {
		log.Printf("zonemap v%s (built %s, commit %s): %d plan(s), %d job(s)",
			Version, BuildTime, GitCommit, len(paths), *jobs)
	}

	cache := imaging.NewFloorPlanCache()
	results := make([]*planResult, len(paths))

	g := new(errgroup.Group)
	g.SetLimit(*jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			img, err := cache.Load(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			info, err := imaging.LoadPlanInfo(cache, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			zm, err := pipeline.Run(img, cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if *verbose {
				log.Printf("%s: %d zone(s), fast-tracked=%v", path, len(zm.Zones), zm.FastTracked)
			}

			results[i] = &planResult{Plan: path, Info: info, ZoneMap: zm}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("Classification error: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			log.Fatalf("Output error: %v", err)
		}
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "zonemap - classify warehouse floor-plan images into functional zones")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage: zonemap [options] <plan.png> [plan2.png ...]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Options:")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Each plan's zone map is printed to stdout as JSON.")
}
