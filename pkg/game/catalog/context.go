package catalog

import (
	"errors"
	"fmt"
	"sort"
)

// ErrMissing is wrapped by all lookups for ids with no catalog entry.
// It signals a configuration/data-integrity problem, not a runtime one.
var ErrMissing = errors.New("no catalog entry")

// Context is an immutable, fully cross-validated set of catalog tables.
// It is injected into the generator so generation stays pure and testable
// with mock catalogs.
type Context struct {
	factions   map[string]*Faction
	classes    map[string]*VesselClass
	rooms      map[string]*RoomType
	containers map[string]*ContainerType

	factionIDs []string
	classIDs   []string
}

// NewContext builds a Context from the given tables, validating ids and
// cross-references once so generation can never hit a missing entry
// partway through placement.
func NewContext(factions []*Faction, classes []*VesselClass, rooms []*RoomType, containers []*ContainerType) (*Context, error) {
	c := &Context{
		factions:   make(map[string]*Faction, len(factions)),
		classes:    make(map[string]*VesselClass, len(classes)),
		rooms:      make(map[string]*RoomType, len(rooms)),
		containers: make(map[string]*ContainerType, len(containers)),
	}

	for _, ct := range containers {
		if err := validateContainerType(ct); err != nil {
			return nil, err
		}
		if _, dup := c.containers[ct.ID]; dup {
			return nil, fmt.Errorf("duplicate container type %q", ct.ID)
		}
		c.containers[ct.ID] = ct
	}
	for _, rt := range rooms {
		if err := validateRoomType(rt, c.containers); err != nil {
			return nil, err
		}
		if _, dup := c.rooms[rt.ID]; dup {
			return nil, fmt.Errorf("duplicate room type %q", rt.ID)
		}
		c.rooms[rt.ID] = rt
	}
	for _, f := range factions {
		if err := validateFaction(f, c.rooms); err != nil {
			return nil, err
		}
		if _, dup := c.factions[f.ID]; dup {
			return nil, fmt.Errorf("duplicate faction %q", f.ID)
		}
		c.factions[f.ID] = f
		c.factionIDs = append(c.factionIDs, f.ID)
	}
	for _, vc := range classes {
		if err := validateVesselClass(vc, c.rooms); err != nil {
			return nil, err
		}
		if _, dup := c.classes[vc.ID]; dup {
			return nil, fmt.Errorf("duplicate vessel class %q", vc.ID)
		}
		c.classes[vc.ID] = vc
		c.classIDs = append(c.classIDs, vc.ID)
	}

	// Ordered id lists keep seeded picks deterministic regardless of
	// the order entries were loaded in.
	sort.Strings(c.factionIDs)
	sort.Strings(c.classIDs)
	return c, nil
}

// Faction returns the faction with the given id.
func (c *Context) Faction(id string) (*Faction, error) {
	f, ok := c.factions[id]
	if !ok {
		return nil, fmt.Errorf("faction %q: %w", id, ErrMissing)
	}
	return f, nil
}

// VesselClass returns the vessel class with the given id.
func (c *Context) VesselClass(id string) (*VesselClass, error) {
	v, ok := c.classes[id]
	if !ok {
		return nil, fmt.Errorf("vessel class %q: %w", id, ErrMissing)
	}
	return v, nil
}

// RoomType returns the room type with the given id.
func (c *Context) RoomType(id string) (*RoomType, error) {
	r, ok := c.rooms[id]
	if !ok {
		return nil, fmt.Errorf("room type %q: %w", id, ErrMissing)
	}
	return r, nil
}

// ContainerType returns the container type with the given id.
func (c *Context) ContainerType(id string) (*ContainerType, error) {
	t, ok := c.containers[id]
	if !ok {
		return nil, fmt.Errorf("container type %q: %w", id, ErrMissing)
	}
	return t, nil
}

// Factions returns all factions ordered by id.
func (c *Context) Factions() []*Faction {
	out := make([]*Faction, 0, len(c.factionIDs))
	for _, id := range c.factionIDs {
		out = append(out, c.factions[id])
	}
	return out
}

// ClassesForTier returns all vessel classes valid for the tier, ordered
// by id.
func (c *Context) ClassesForTier(tier int) []*VesselClass {
	var out []*VesselClass
	for _, id := range c.classIDs {
		if vc := c.classes[id]; vc.ValidForTier(tier) {
			out = append(out, vc)
		}
	}
	return out
}

func validateContainerType(ct *ContainerType) error {
	if ct.ID == "" {
		return errors.New("container type with empty id")
	}
	if ct.MinSpacing < 1 {
		return fmt.Errorf("container type %q: min spacing must be at least 1", ct.ID)
	}
	if ct.MinSlots < 1 || ct.MaxSlots < ct.MinSlots {
		return fmt.Errorf("container type %q: invalid slot range [%d,%d]", ct.ID, ct.MinSlots, ct.MaxSlots)
	}
	return nil
}

func validateRoomType(rt *RoomType, containers map[string]*ContainerType) error {
	if rt.ID == "" {
		return errors.New("room type with empty id")
	}
	if rt.MinSize.W < 3 || rt.MinSize.H < 3 {
		return fmt.Errorf("room type %q: minimum size must be at least 3x3", rt.ID)
	}
	if rt.MaxSize.W < rt.MinSize.W || rt.MaxSize.H < rt.MinSize.H {
		return fmt.Errorf("room type %q: max size smaller than min size", rt.ID)
	}
	switch rt.Anchor {
	case AnchorFore, AnchorAft, AnchorCenter, AnchorAny:
	case "":
		rt.Anchor = AnchorAny
	default:
		return fmt.Errorf("room type %q: unknown anchor %q", rt.ID, rt.Anchor)
	}
	for _, slot := range rt.Containers {
		if _, ok := containers[slot.TypeID]; !ok {
			return fmt.Errorf("room type %q: container type %q: %w", rt.ID, slot.TypeID, ErrMissing)
		}
		if slot.MinCount < 0 || slot.MaxCount < slot.MinCount {
			return fmt.Errorf("room type %q: container %q: invalid count range [%d,%d]",
				rt.ID, slot.TypeID, slot.MinCount, slot.MaxCount)
		}
		if slot.Affinity < 0 {
			return fmt.Errorf("room type %q: container %q: negative affinity", rt.ID, slot.TypeID)
		}
	}
	return nil
}

func validateFaction(f *Faction, rooms map[string]*RoomType) error {
	if f.ID == "" {
		return errors.New("faction with empty id")
	}
	for roomID := range f.RoomAffinity {
		if _, ok := rooms[roomID]; !ok {
			return fmt.Errorf("faction %q: room affinity %q: %w", f.ID, roomID, ErrMissing)
		}
	}
	if f.HomeDistance < 0 || f.HomeDistance > 1 {
		return fmt.Errorf("faction %q: home distance %v outside [0,1]", f.ID, f.HomeDistance)
	}
	return nil
}

func validateVesselClass(vc *VesselClass, rooms map[string]*RoomType) error {
	if vc.ID == "" {
		return errors.New("vessel class with empty id")
	}
	if vc.HullMin.W < 8 || vc.HullMin.H < 8 {
		return fmt.Errorf("vessel class %q: hull must be at least 8x8", vc.ID)
	}
	if vc.HullMax.W < vc.HullMin.W || vc.HullMax.H < vc.HullMin.H {
		return fmt.Errorf("vessel class %q: max hull smaller than min hull", vc.ID)
	}
	if vc.MinRooms < 1 || vc.MaxRooms < vc.MinRooms {
		return fmt.Errorf("vessel class %q: invalid room count range [%d,%d]", vc.ID, vc.MinRooms, vc.MaxRooms)
	}
	if len(vc.RequiredRooms) == 0 {
		return fmt.Errorf("vessel class %q: at least one required room", vc.ID)
	}
	if len(vc.RequiredRooms) > vc.MaxRooms {
		return fmt.Errorf("vessel class %q: %d required rooms exceed max room count %d",
			vc.ID, len(vc.RequiredRooms), vc.MaxRooms)
	}
	if vc.MinTier < 1 || vc.MaxTier < vc.MinTier {
		return fmt.Errorf("vessel class %q: invalid tier range [%d,%d]", vc.ID, vc.MinTier, vc.MaxTier)
	}
	for _, id := range vc.RequiredRooms {
		if _, ok := rooms[id]; !ok {
			return fmt.Errorf("vessel class %q: required room %q: %w", vc.ID, id, ErrMissing)
		}
	}
	for _, id := range vc.OptionalRooms {
		if _, ok := rooms[id]; !ok {
			return fmt.Errorf("vessel class %q: optional room %q: %w", vc.ID, id, ErrMissing)
		}
	}
	return nil
}
