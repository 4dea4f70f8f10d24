package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlCatalogFile is the top-level YAML structure for catalog files.
// A file may carry any subset of the four tables; LoadDir merges files.
type yamlCatalogFile struct {
	Factions       []yamlFaction       `yaml:"factions"`
	VesselClasses  []yamlVesselClass   `yaml:"vessel_classes"`
	RoomTypes      []yamlRoomType      `yaml:"room_types"`
	ContainerTypes []yamlContainerType `yaml:"container_types"`
}

type yamlFaction struct {
	ID              string             `yaml:"id"`
	Name            string             `yaml:"name"`
	Theme           string             `yaml:"theme"`
	RarityModifiers map[string]float64 `yaml:"rarity_modifiers"`
	RoomAffinity    map[string]float64 `yaml:"room_affinity"`
	HomeDistance    float64            `yaml:"home_distance"`
}

type yamlVesselClass struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	HullMin       Size     `yaml:"hull_min"`
	HullMax       Size     `yaml:"hull_max"`
	MinRooms      int      `yaml:"min_rooms"`
	MaxRooms      int      `yaml:"max_rooms"`
	RequiredRooms []string `yaml:"required_rooms"`
	OptionalRooms []string `yaml:"optional_rooms"`
	MinTier       int      `yaml:"min_tier"`
	MaxTier       int      `yaml:"max_tier"`
}

type yamlRoomType struct {
	ID              string              `yaml:"id"`
	Name            string              `yaml:"name"`
	MinSize         Size                `yaml:"min_size"`
	MaxSize         Size                `yaml:"max_size"`
	Containers      []yamlContainerSlot `yaml:"containers"`
	RarityModifiers map[string]float64  `yaml:"rarity_modifiers"`
	Special         bool                `yaml:"special"`
	Anchor          string              `yaml:"anchor"`
}

type yamlContainerSlot struct {
	Type     string  `yaml:"type"`
	Min      int     `yaml:"min"`
	Max      int     `yaml:"max"`
	Affinity float64 `yaml:"affinity"`
}

type yamlContainerType struct {
	ID              string             `yaml:"id"`
	Name            string             `yaml:"name"`
	RarityModifiers map[string]float64 `yaml:"rarity_modifiers"`
	MinSpacing      int                `yaml:"min_spacing"`
	MinSlots        int                `yaml:"min_slots"`
	MaxSlots        int                `yaml:"max_slots"`
}

// vectorFromMap converts a rarity-name keyed map to a RarityVector.
// Missing tiers default to 1.0 so files only list what they change.
func vectorFromMap(m map[string]float64) (RarityVector, error) {
	out := UniformVector(1.0)
	for name, v := range m {
		r, err := ParseRarity(name)
		if err != nil {
			return out, err
		}
		out[r] = v
	}
	return out, nil
}

// LoadBytes parses catalog tables from YAML bytes and builds a validated
// Context.
func LoadBytes(data []byte) (*Context, error) {
	tables, err := parseBytes(data)
	if err != nil {
		return nil, err
	}
	return tables.context()
}

// LoadFile reads and validates a single catalog YAML file.
func LoadFile(path string) (*Context, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file %s: %w", path, err)
	}
	ctx, err := LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return ctx, nil
}

// LoadDir merges all .yaml/.yml files in a directory (in name order, so
// loading stays deterministic) into one validated Context.
func LoadDir(dir string) (*Context, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading catalog directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no catalog files in %s", dir)
	}
	sort.Strings(names)

	var merged tables
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading catalog file %s: %w", path, err)
		}
		t, err := parseBytes(data)
		if err != nil {
			return nil, fmt.Errorf("catalog file %s: %w", path, err)
		}
		merged.factions = append(merged.factions, t.factions...)
		merged.classes = append(merged.classes, t.classes...)
		merged.rooms = append(merged.rooms, t.rooms...)
		merged.containers = append(merged.containers, t.containers...)
	}
	return merged.context()
}

// tables is the intermediate parsed form before Context validation.
type tables struct {
	factions   []*Faction
	classes    []*VesselClass
	rooms      []*RoomType
	containers []*ContainerType
}

func (t tables) context() (*Context, error) {
	return NewContext(t.factions, t.classes, t.rooms, t.containers)
}

func parseBytes(data []byte) (tables, error) {
	var file yamlCatalogFile
	var out tables
	if err := yaml.Unmarshal(data, &file); err != nil {
		return out, fmt.Errorf("parsing catalog YAML: %w", err)
	}

	for _, yf := range file.Factions {
		mods, err := vectorFromMap(yf.RarityModifiers)
		if err != nil {
			return out, fmt.Errorf("faction %q: %w", yf.ID, err)
		}
		out.factions = append(out.factions, &Faction{
			ID:              yf.ID,
			Name:            yf.Name,
			Theme:           yf.Theme,
			RarityModifiers: mods,
			RoomAffinity:    yf.RoomAffinity,
			HomeDistance:    yf.HomeDistance,
		})
	}
	for _, yc := range file.VesselClasses {
		out.classes = append(out.classes, &VesselClass{
			ID:            yc.ID,
			Name:          yc.Name,
			HullMin:       yc.HullMin,
			HullMax:       yc.HullMax,
			MinRooms:      yc.MinRooms,
			MaxRooms:      yc.MaxRooms,
			RequiredRooms: yc.RequiredRooms,
			OptionalRooms: yc.OptionalRooms,
			MinTier:       yc.MinTier,
			MaxTier:       yc.MaxTier,
		})
	}
	for _, yr := range file.RoomTypes {
		mods, err := vectorFromMap(yr.RarityModifiers)
		if err != nil {
			return out, fmt.Errorf("room type %q: %w", yr.ID, err)
		}
		rt := &RoomType{
			ID:              yr.ID,
			Name:            yr.Name,
			MinSize:         yr.MinSize,
			MaxSize:         yr.MaxSize,
			RarityModifiers: mods,
			Special:         yr.Special,
			Anchor:          Anchor(yr.Anchor),
		}
		for _, ys := range yr.Containers {
			affinity := ys.Affinity
			if affinity == 0 {
				affinity = 1.0
			}
			rt.Containers = append(rt.Containers, ContainerSlot{
				TypeID:   ys.Type,
				MinCount: ys.Min,
				MaxCount: ys.Max,
				Affinity: affinity,
			})
		}
		out.rooms = append(out.rooms, rt)
	}
	for _, yt := range file.ContainerTypes {
		mods, err := vectorFromMap(yt.RarityModifiers)
		if err != nil {
			return out, fmt.Errorf("container type %q: %w", yt.ID, err)
		}
		out.containers = append(out.containers, &ContainerType{
			ID:              yt.ID,
			Name:            yt.Name,
			RarityModifiers: mods,
			MinSpacing:      yt.MinSpacing,
			MinSlots:        yt.MinSlots,
			MaxSlots:        yt.MaxSlots,
		})
	}
	return out, nil
}
