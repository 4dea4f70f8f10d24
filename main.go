// Command derelict generates a boardable vessel interior and prints it
// as a colored map with a loot summary. It is the preview and debugging
// front end for the generator; game clients consume layouts directly.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/leonelquinteros/gotext"
	"go.uber.org/zap"

	"derelict/pkg/game/catalog"
	"derelict/pkg/game/config"
	"derelict/pkg/game/generator"
	"derelict/pkg/game/layout"
	"derelict/pkg/game/renderer"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (default: ./derelict.yaml if present)")
	catalogDir := flag.String("catalog", "", "directory of catalog YAML files (default: built-in catalog)")
	tier := flag.Int("tier", -1, "vessel tier 1-5, or 0 to derive from distance")
	faction := flag.String("faction", "", "owning faction id")
	class := flag.String("class", "", "vessel class id (default: auto-select for tier)")
	seed := flag.Int64("seed", 0, "generation seed (0 picks from the clock)")
	distance := flag.Float64("distance", -1, "distance factor 0-1 from the home base")
	quiet := flag.Bool("quiet", false, "print the map only, no summary")
	flag.Parse()

	gotext.Configure("locales", "en_US", "default")

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(&cfg, *catalogDir, *tier, *faction, *class, *seed, *distance)

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cat, err := loadCatalog(cfg.Catalog.Dir, log)
	if err != nil {
		log.Fatal("loading catalog", zap.Error(err))
	}

	if cfg.Generation.Seed == 0 {
		cfg.Generation.Seed = time.Now().UnixNano()
	}

	l, err := generate(cat, cfg.Generation, log)
	if err != nil {
		log.Fatal("generation failed", zap.Error(err))
	}

	renderer.InitColors()
	renderer.PrintMap(l)
	if !*quiet {
		renderer.PrintLegend()
		renderer.PrintSummary(l)
	}
}

// applyFlags overrides config values with any flag the user set
// explicitly. Flags always win over file and environment values.
func applyFlags(cfg *config.Config, catalogDir string, tier int, faction, class string, seed int64, distance float64) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "catalog":
			cfg.Catalog.Dir = catalogDir
		case "tier":
			cfg.Generation.Tier = tier
		case "faction":
			cfg.Generation.Faction = faction
		case "class":
			cfg.Generation.Class = class
		case "seed":
			cfg.Generation.Seed = seed
		case "distance":
			cfg.Generation.Distance = distance
		}
	})
}

// loadCatalog reads the catalog directory, or falls back to the
// built-in catalog when no directory is configured.
func loadCatalog(dir string, log *zap.Logger) (*catalog.Context, error) {
	if dir == "" {
		log.Debug("using built-in catalog")
		return catalog.Default(), nil
	}
	log.Debug("loading catalog", zap.String("dir", dir))
	return catalog.LoadDir(dir)
}

// generate runs the generator with a pinned tier and faction when both
// are given, otherwise derives them from the distance factor.
func generate(cat *catalog.Context, g config.GenerationConfig, log *zap.Logger) (*layout.ShipLayout, error) {
	if g.Tier == 0 {
		return generator.GenerateForDistance(cat, g.Distance, g.Seed, log)
	}
	if g.Faction == "" {
		return nil, fmt.Errorf("faction is required when tier is pinned to %d", g.Tier)
	}
	return generator.Generate(cat, generator.Params{
		Tier:           g.Tier,
		FactionID:      g.Faction,
		ClassID:        g.Class,
		Seed:           g.Seed,
		DistanceFactor: g.Distance,
	}, log)
}
