package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cat := Default()

	f, err := cat.Faction("SYN")
	require.NoError(t, err)
	assert.Equal(t, "Veiled Syndicate", f.Name)
	assert.InDelta(t, 0.8, f.HomeDistance, 1e-9)

	vc, err := cat.VesselClass("cargo_shuttle")
	require.NoError(t, err)
	assert.Equal(t, []string{"bridge", "cargo_hold"}, vc.RequiredRooms)
	assert.True(t, vc.ValidForTier(1))
	assert.False(t, vc.ValidForTier(3))

	rt, err := cat.RoomType("vault")
	require.NoError(t, err)
	assert.True(t, rt.Special)
	assert.Equal(t, AnchorCenter, rt.Anchor)

	ct, err := cat.ContainerType("safe")
	require.NoError(t, err)
	assert.Equal(t, 2, ct.MinSpacing)
}

func TestDefault_ClassesForTierOrderedByID(t *testing.T) {
	cat := Default()

	ids := func(classes []*VesselClass) []string {
		out := make([]string, len(classes))
		for i, c := range classes {
			out[i] = c.ID
		}
		return out
	}

	assert.Equal(t, []string{"cargo_shuttle", "freighter"}, ids(cat.ClassesForTier(1)))
	assert.Equal(t, []string{"black_ops_vessel"}, ids(cat.ClassesForTier(5)))
}

func TestDefault_FactionsOrderedByID(t *testing.T) {
	factions := Default().Factions()
	require.Len(t, factions, 3)
	assert.Equal(t, "CCG", factions[0].ID)
	assert.Equal(t, "FER", factions[1].ID)
	assert.Equal(t, "SYN", factions[2].ID)
}

func TestLookup_MissingWrapsErrMissing(t *testing.T) {
	cat := Default()

	_, err := cat.Faction("nope")
	assert.ErrorIs(t, err, ErrMissing)
	_, err = cat.VesselClass("nope")
	assert.ErrorIs(t, err, ErrMissing)
	_, err = cat.RoomType("nope")
	assert.ErrorIs(t, err, ErrMissing)
	_, err = cat.ContainerType("nope")
	assert.ErrorIs(t, err, ErrMissing)
}

const sampleCatalog = `
container_types:
  - id: chest
    name: Chest
    min_spacing: 1
    min_slots: 2
    max_slots: 4
    rarity_modifiers:
      rare: 1.5

room_types:
  - id: hold
    name: Hold
    min_size: {w: 4, h: 4}
    max_size: {w: 6, h: 6}
    containers:
      - {type: chest, min: 1, max: 2}

factions:
  - id: TST
    name: Testers
    home_distance: 0.5
    room_affinity:
      hold: 2.0

vessel_classes:
  - id: tug
    name: Tug
    hull_min: {w: 12, h: 10}
    hull_max: {w: 14, h: 12}
    min_rooms: 1
    max_rooms: 2
    required_rooms: [hold]
    min_tier: 1
    max_tier: 3
`

func TestLoadBytes(t *testing.T) {
	cat, err := LoadBytes([]byte(sampleCatalog))
	require.NoError(t, err)

	ct, err := cat.ContainerType("chest")
	require.NoError(t, err)
	// Unlisted tiers default to 1.0.
	assert.Equal(t, RarityVector{1.0, 1.0, 1.5, 1.0, 1.0}, ct.RarityModifiers)

	rt, err := cat.RoomType("hold")
	require.NoError(t, err)
	require.Len(t, rt.Containers, 1)
	assert.Equal(t, "chest", rt.Containers[0].TypeID)
	// Unset affinity defaults to 1.0.
	assert.InDelta(t, 1.0, rt.Containers[0].Affinity, 1e-9)
	// Unset anchor defaults to any.
	assert.Equal(t, AnchorAny, rt.Anchor)

	f, err := cat.Faction("TST")
	require.NoError(t, err)
	assert.Equal(t, UniformVector(1.0), f.RarityModifiers)
}

func TestLoadBytes_UnknownRarityKey(t *testing.T) {
	_, err := LoadBytes([]byte(`
container_types:
  - id: chest
    min_spacing: 1
    min_slots: 1
    max_slots: 1
    rarity_modifiers:
      mythic: 2.0
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mythic")
}

func TestLoadDir_MergesFilesInNameOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "10-base.yaml"), []byte(`
container_types:
  - id: chest
    min_spacing: 1
    min_slots: 2
    max_slots: 4
room_types:
  - id: hold
    min_size: {w: 4, h: 4}
    max_size: {w: 6, h: 6}
    containers:
      - {type: chest, min: 1, max: 2}
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20-factions.yaml"), []byte(`
factions:
  - id: TST
    home_distance: 0.5
vessel_classes:
  - id: tug
    hull_min: {w: 12, h: 10}
    hull_max: {w: 14, h: 12}
    min_rooms: 1
    max_rooms: 2
    required_rooms: [hold]
    min_tier: 1
    max_tier: 3
`), 0o644))

	cat, err := LoadDir(dir)
	require.NoError(t, err)
	_, err = cat.VesselClass("tug")
	assert.NoError(t, err)
	_, err = cat.RoomType("hold")
	assert.NoError(t, err)
}

func TestLoadDir_EmptyDirectory(t *testing.T) {
	_, err := LoadDir(t.TempDir())
	require.Error(t, err)
}

func TestNewContext_RejectsDuplicates(t *testing.T) {
	room := &RoomType{ID: "hold", MinSize: Size{3, 3}, MaxSize: Size{4, 4}, Anchor: AnchorAny}
	dup := &RoomType{ID: "hold", MinSize: Size{3, 3}, MaxSize: Size{4, 4}, Anchor: AnchorAny}
	_, err := NewContext(nil, nil, []*RoomType{room, dup}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestNewContext_RejectsDanglingContainerRef(t *testing.T) {
	room := &RoomType{
		ID:      "hold",
		MinSize: Size{3, 3}, MaxSize: Size{4, 4},
		Anchor:     AnchorAny,
		Containers: []ContainerSlot{{TypeID: "ghost", MinCount: 0, MaxCount: 1, Affinity: 1}},
	}
	_, err := NewContext(nil, nil, []*RoomType{room}, nil)
	assert.ErrorIs(t, err, ErrMissing)
}

func TestNewContext_RejectsUndersizedRoom(t *testing.T) {
	room := &RoomType{ID: "closet", MinSize: Size{2, 2}, MaxSize: Size{3, 3}, Anchor: AnchorAny}
	_, err := NewContext(nil, nil, []*RoomType{room}, nil)
	require.Error(t, err)
}

func TestParseRarity(t *testing.T) {
	for r := Rarity(0); int(r) < NumRarities; r++ {
		got, err := ParseRarity(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
	_, err := ParseRarity("mythic")
	assert.Error(t, err)
}
