package catalog

// Size is a width/height pair in grid cells.
type Size struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Anchor biases where a room type prefers to sit inside the hull.
type Anchor string

const (
	// AnchorFore biases toward the forward (high-X) hull edge.
	AnchorFore Anchor = "fore"
	// AnchorAft biases toward the aft (low-X) hull edge.
	AnchorAft Anchor = "aft"
	// AnchorCenter biases toward the hull center.
	AnchorCenter Anchor = "center"
	// AnchorAny picks a seeded random anchor.
	AnchorAny Anchor = "any"
)

// Faction describes a vessel-owning faction: its loot quality bias and
// which room types its vessels favour.
type Faction struct {
	ID    string
	Name  string
	Theme string
	// RarityModifiers multiplies loot weights per rarity tier.
	RarityModifiers RarityVector
	// RoomAffinity weights filler-room selection per room type id.
	// Missing entries count as 1.0.
	RoomAffinity map[string]float64
	// HomeDistance is where in [0,1] distance-from-home-base space this
	// faction's traffic is densest; used when deriving a faction from a
	// distance factor.
	HomeDistance float64
}

// ContainerSlot pairs a container type with how many of it a room type
// may hold and how strongly the room favours it.
type ContainerSlot struct {
	TypeID   string
	MinCount int
	MaxCount int
	Affinity float64
}

// RoomType describes a placeable room: size bounds, compatible
// containers, loot bias, and placement preferences.
type RoomType struct {
	ID              string
	Name            string
	MinSize         Size
	MaxSize         Size
	Containers      []ContainerSlot
	RarityModifiers RarityVector
	// Special rooms appear at most once per vessel and guarantee one
	// loot roll at Rare or better.
	Special bool
	Anchor  Anchor
}

// ContainerType describes a lootable container kind.
type ContainerType struct {
	ID              string
	Name            string
	RarityModifiers RarityVector
	// MinSpacing is the minimum cell distance kept from walls and from
	// other containers in the same room.
	MinSpacing int
	MinSlots   int
	MaxSlots   int
}

// VesselClass describes a hull: its size bounds, room-count range, the
// rooms it must and may carry, and the difficulty tiers it spawns at.
type VesselClass struct {
	ID      string
	Name    string
	HullMin Size
	HullMax Size

	MinRooms int
	MaxRooms int
	// RequiredRooms are placed first, in this order.
	RequiredRooms []string
	// OptionalRooms are drawn as fillers, weighted by faction affinity.
	OptionalRooms []string

	MinTier int
	MaxTier int
}

// ValidForTier reports whether this class spawns at the given tier.
func (v *VesselClass) ValidForTier(tier int) bool {
	return tier >= v.MinTier && tier <= v.MaxTier
}
