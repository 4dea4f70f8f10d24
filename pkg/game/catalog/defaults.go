package catalog

// Default returns the built-in catalog. It mirrors the shipped game data
// closely enough for tools and tests to run without external YAML files.
func Default() *Context {
	ctx, err := NewContext(defaultFactions(), defaultClasses(), defaultRoomTypes(), defaultContainerTypes())
	if err != nil {
		// The built-in tables are compiled in; failing validation is a bug.
		panic("invalid built-in catalog: " + err.Error())
	}
	return ctx
}

func defaultFactions() []*Faction {
	return []*Faction{
		{
			ID:              "CCG",
			Name:            "Colonial Cargo Guild",
			Theme:           "rust_hauler",
			RarityModifiers: RarityVector{1.15, 1.0, 0.9, 0.8, 0.7},
			RoomAffinity: map[string]float64{
				"cargo_hold":    2.0,
				"storage":       1.5,
				"crew_quarters": 1.2,
			},
			HomeDistance: 0.15,
		},
		{
			ID:              "SYN",
			Name:            "Veiled Syndicate",
			Theme:           "black_market",
			RarityModifiers: RarityVector{0.8, 1.0, 1.2, 1.35, 1.5},
			RoomAffinity: map[string]float64{
				"armory":  2.0,
				"storage": 1.2,
				"med_bay": 0.8,
			},
			HomeDistance: 0.8,
		},
		{
			ID:              "FER",
			Name:            "Ferrous Combine",
			Theme:           "mining_rig",
			RarityModifiers: RarityVector{1.0, 1.05, 1.0, 0.9, 0.85},
			RoomAffinity: map[string]float64{
				"storage":     1.8,
				"engine_room": 1.4,
			},
			HomeDistance: 0.45,
		},
	}
}

func defaultClasses() []*VesselClass {
	return []*VesselClass{
		{
			ID:            "cargo_shuttle",
			Name:          "Cargo Shuttle",
			HullMin:       Size{26, 16},
			HullMax:       Size{32, 20},
			MinRooms:      2,
			MaxRooms:      4,
			RequiredRooms: []string{"bridge", "cargo_hold"},
			OptionalRooms: []string{"storage", "crew_quarters"},
			MinTier:       1,
			MaxTier:       2,
		},
		{
			ID:            "patrol_corvette",
			Name:          "Patrol Corvette",
			HullMin:       Size{30, 20},
			HullMax:       Size{38, 26},
			MinRooms:      4,
			MaxRooms:      6,
			RequiredRooms: []string{"bridge", "engine_room", "armory"},
			OptionalRooms: []string{"crew_quarters", "storage", "med_bay"},
			MinTier:       2,
			MaxTier:       4,
		},
		{
			ID:            "freighter",
			Name:          "Bulk Freighter",
			HullMin:       Size{36, 24},
			HullMax:       Size{46, 30},
			MinRooms:      5,
			MaxRooms:      8,
			RequiredRooms: []string{"bridge", "engine_room", "cargo_hold"},
			OptionalRooms: []string{"storage", "crew_quarters", "med_bay"},
			MinTier:       1,
			MaxTier:       4,
		},
		{
			ID:            "black_ops_vessel",
			Name:          "Black Ops Vessel",
			HullMin:       Size{36, 24},
			HullMax:       Size{44, 30},
			MinRooms:      5,
			MaxRooms:      7,
			RequiredRooms: []string{"bridge", "engine_room", "armory", "vault"},
			OptionalRooms: []string{"crew_quarters", "med_bay", "storage"},
			MinTier:       4,
			MaxTier:       5,
		},
	}
}

func defaultRoomTypes() []*RoomType {
	return []*RoomType{
		{
			ID:      "bridge",
			Name:    "Bridge",
			MinSize: Size{4, 3},
			MaxSize: Size{6, 5},
			Anchor:  AnchorFore,
			Containers: []ContainerSlot{
				{TypeID: "locker", MinCount: 0, MaxCount: 1, Affinity: 1.0},
				{TypeID: "safe", MinCount: 0, MaxCount: 1, Affinity: 0.5},
			},
			RarityModifiers: RarityVector{1.0, 1.0, 1.1, 1.2, 1.0},
		},
		{
			ID:      "engine_room",
			Name:    "Engine Room",
			MinSize: Size{4, 4},
			MaxSize: Size{7, 6},
			Anchor:  AnchorAft,
			Containers: []ContainerSlot{
				{TypeID: "crate", MinCount: 0, MaxCount: 2, Affinity: 1.0},
				{TypeID: "locker", MinCount: 0, MaxCount: 1, Affinity: 0.5},
			},
			RarityModifiers: UniformVector(1.0),
		},
		{
			ID:      "cargo_hold",
			Name:    "Cargo Hold",
			MinSize: Size{5, 4},
			MaxSize: Size{9, 7},
			Anchor:  AnchorCenter,
			Containers: []ContainerSlot{
				{TypeID: "crate", MinCount: 2, MaxCount: 4, Affinity: 2.0},
				{TypeID: "locker", MinCount: 0, MaxCount: 1, Affinity: 0.5},
			},
			RarityModifiers: RarityVector{1.2, 1.0, 1.0, 0.9, 0.9},
		},
		{
			ID:      "crew_quarters",
			Name:    "Crew Quarters",
			MinSize: Size{4, 3},
			MaxSize: Size{6, 5},
			Anchor:  AnchorAny,
			Containers: []ContainerSlot{
				{TypeID: "locker", MinCount: 1, MaxCount: 3, Affinity: 1.5},
			},
			RarityModifiers: UniformVector(1.0),
		},
		{
			ID:      "med_bay",
			Name:    "Med Bay",
			MinSize: Size{3, 3},
			MaxSize: Size{5, 4},
			Anchor:  AnchorAny,
			Containers: []ContainerSlot{
				{TypeID: "med_cabinet", MinCount: 1, MaxCount: 2, Affinity: 2.0},
			},
			RarityModifiers: RarityVector{0.9, 1.1, 1.1, 1.0, 0.9},
		},
		{
			ID:      "armory",
			Name:    "Armory",
			MinSize: Size{4, 3},
			MaxSize: Size{5, 4},
			Anchor:  AnchorAny,
			Containers: []ContainerSlot{
				{TypeID: "weapon_rack", MinCount: 1, MaxCount: 2, Affinity: 2.0},
				{TypeID: "safe", MinCount: 0, MaxCount: 1, Affinity: 1.0},
			},
			RarityModifiers: RarityVector{0.9, 1.0, 1.1, 1.2, 1.2},
		},
		{
			ID:      "storage",
			Name:    "Storage",
			MinSize: Size{3, 3},
			MaxSize: Size{6, 5},
			Anchor:  AnchorAny,
			Containers: []ContainerSlot{
				{TypeID: "crate", MinCount: 1, MaxCount: 3, Affinity: 1.5},
			},
			RarityModifiers: UniformVector(1.0),
		},
		{
			ID:      "vault",
			Name:    "Vault",
			MinSize: Size{5, 5},
			MaxSize: Size{6, 6},
			Anchor:  AnchorCenter,
			Special: true,
			Containers: []ContainerSlot{
				{TypeID: "safe", MinCount: 1, MaxCount: 2, Affinity: 2.0},
			},
			RarityModifiers: RarityVector{0.8, 1.0, 1.3, 1.5, 1.6},
		},
	}
}

func defaultContainerTypes() []*ContainerType {
	return []*ContainerType{
		{
			ID:              "crate",
			Name:            "Shipping Crate",
			RarityModifiers: RarityVector{1.2, 1.0, 0.9, 0.7, 0.5},
			MinSpacing:      1,
			MinSlots:        4,
			MaxSlots:        8,
		},
		{
			ID:              "locker",
			Name:            "Crew Locker",
			RarityModifiers: RarityVector{1.0, 1.1, 1.0, 0.9, 0.8},
			MinSpacing:      1,
			MinSlots:        3,
			MaxSlots:        6,
		},
		{
			ID:              "med_cabinet",
			Name:            "Medical Cabinet",
			RarityModifiers: RarityVector{0.9, 1.1, 1.2, 1.0, 0.9},
			MinSpacing:      1,
			MinSlots:        2,
			MaxSlots:        4,
		},
		{
			ID:              "weapon_rack",
			Name:            "Weapon Rack",
			RarityModifiers: RarityVector{0.7, 1.0, 1.2, 1.3, 1.2},
			MinSpacing:      1,
			MinSlots:        2,
			MaxSlots:        4,
		},
		{
			ID:              "safe",
			Name:            "Armored Safe",
			RarityModifiers: RarityVector{0.4, 0.8, 1.3, 1.6, 1.8},
			MinSpacing:      2,
			MinSlots:        1,
			MaxSlots:        3,
		},
	}
}
