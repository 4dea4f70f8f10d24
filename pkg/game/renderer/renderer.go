// Package renderer draws a generated vessel layout as a colored ASCII
// map on the terminal, for previewing and debugging generation output.
// It is a development aid; the game client renders layouts itself.
package renderer

import (
	"fmt"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"derelict/pkg/engine/grid"
	"derelict/pkg/engine/terminal"
	"derelict/pkg/game/catalog"
	"derelict/pkg/game/layout"
)

// Map icons.
const (
	IconWall       = "▒"
	IconRoom       = "·"
	IconCorridor   = "░"
	IconDoor       = "□"
	IconDoorLocked = "▣"
	IconContainer  = "◆"
	IconEntry      = "▽"
	IconExit       = "△"
	IconVoid       = " "
)

var (
	ColorRoom      color.Style
	ColorCorridor  color.Style
	ColorWall      color.Style
	ColorDoor      color.Style
	ColorLocked    color.Style
	ColorEntry     color.Style
	ColorExit      color.Style
	ColorSubtle    color.Style
	rarityStyles   [catalog.NumRarities]color.Style
	colorsReady    bool
)

// InitColors initializes the color styles. Must be called once before
// any Print function. Color codes are suppressed when output is piped.
func InitColors() {
	if !terminal.IsInteractive() {
		color.Disable()
	}

	ColorRoom = color.Style{color.FgBlue}
	ColorCorridor = color.Style{color.FgGray}
	ColorWall = color.Style{color.FgGray, color.OpBold}
	ColorDoor = color.Style{color.FgCyan}
	ColorLocked = color.Style{color.FgRed, color.OpBold}
	ColorEntry = color.Style{color.FgGreen, color.OpBold}
	ColorExit = color.Style{color.FgMagenta, color.OpBold}
	ColorSubtle = color.Style{color.FgGray}

	rarityStyles[catalog.Common] = color.Style{color.FgGray}
	rarityStyles[catalog.Uncommon] = color.Style{color.FgGreen}
	rarityStyles[catalog.Rare] = color.Style{color.FgBlue, color.OpBold}
	rarityStyles[catalog.Epic] = color.Style{color.FgMagenta, color.OpBold}
	rarityStyles[catalog.Legendary] = color.Style{color.FgYellow, color.OpBold}
	colorsReady = true
}

// RarityStyle returns the display style for a rarity tier.
func RarityStyle(r catalog.Rarity) color.Style {
	if !colorsReady || r < 0 || int(r) >= catalog.NumRarities {
		return color.Style{}
	}
	return rarityStyles[r]
}

// RenderCell returns the colored icon for one map cell.
func RenderCell(l *layout.ShipLayout, p grid.Point) string {
	if p == l.Entry {
		return ColorEntry.Sprint(IconEntry)
	}
	if p == l.Exit {
		return ColorExit.Sprint(IconExit)
	}

	switch l.StateAt(p) {
	case grid.Room:
		return ColorRoom.Sprint(IconRoom)
	case grid.Corridor:
		return ColorCorridor.Sprint(IconCorridor)
	case grid.Wall:
		return ColorWall.Sprint(IconWall)
	case grid.Reserved:
		for _, c := range l.Containers {
			if c.Pos == p {
				return RarityStyle(c.Floor).Sprint(IconContainer)
			}
		}
		return ColorRoom.Sprint(IconContainer)
	case grid.Door:
		for _, d := range l.Doors {
			if d.Pos == p && d.LockTier > 0 {
				return ColorLocked.Sprint(IconDoorLocked)
			}
		}
		return ColorDoor.Sprint(IconDoor)
	default:
		return IconVoid
	}
}

// PrintMap renders the full vessel map, centered when the terminal is
// wide enough.
func PrintMap(l *layout.ShipLayout) {
	indent := ""
	if pad := (terminal.Width() - l.Width) / 2; pad > 0 {
		indent = strings.Repeat(" ", pad)
	}

	for y := 0; y < l.Height; y++ {
		fmt.Print(indent)
		for x := 0; x < l.Width; x++ {
			fmt.Print(RenderCell(l, grid.Point{X: x, Y: y}))
		}
		fmt.Println()
	}
}

// PrintLegend prints the icon legend beneath the map.
func PrintLegend() {
	entries := []struct {
		icon  string
		style color.Style
		label string
	}{
		{IconEntry, ColorEntry, gotext.Get("boarding point")},
		{IconExit, ColorExit, gotext.Get("extraction point")},
		{IconDoor, ColorDoor, gotext.Get("door")},
		{IconDoorLocked, ColorLocked, gotext.Get("locked door")},
		{IconContainer, ColorRoom, gotext.Get("container")},
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.style.Sprint(e.icon)+" "+e.label)
	}
	fmt.Println()
	fmt.Println(ColorSubtle.Sprint(strings.Join(parts, "   ")))
}

// PrintSummary prints the vessel's rooms, locked doors, and containers
// with their resolved rarity weights.
func PrintSummary(l *layout.ShipLayout) {
	fmt.Println()
	fmt.Printf("%s %s  %s %s  %s %d  %s %d\n",
		ColorSubtle.Sprint(gotext.Get("class:")), l.ClassID,
		ColorSubtle.Sprint(gotext.Get("faction:")), l.FactionID,
		ColorSubtle.Sprint(gotext.Get("tier:")), l.Tier,
		ColorSubtle.Sprint(gotext.Get("seed:")), l.Seed)

	fmt.Println()
	for _, room := range l.Rooms {
		locked := ""
		for _, d := range l.Doors {
			if d.RoomIndex == room.Index && d.LockTier > 0 {
				locked = ColorLocked.Sprintf(" [%s %d]", gotext.Get("lock tier"), d.LockTier)
				break
			}
		}
		fmt.Printf("  %2d %-14s %2dx%-2d%s\n",
			room.Index, room.TypeID, room.Bounds.W, room.Bounds.H, locked)
		for _, c := range l.ContainersInRoom(room.Index) {
			fmt.Printf("       %s %-10s %s\n",
				RarityStyle(c.Floor).Sprint(IconContainer), c.TypeID, formatWeights(c.Weights))
		}
	}

	if locked := l.LockedDoors(); len(locked) > 0 {
		fmt.Println()
		for _, d := range locked {
			key := l.Containers[d.KeyContainer]
			fmt.Printf("  %s %s %d (%s) %s %s (%s %d)\n",
				ColorLocked.Sprint(IconDoorLocked),
				gotext.Get("room"), d.RoomIndex, l.Rooms[d.RoomIndex].TypeID,
				ColorSubtle.Sprint(gotext.Get("key in")),
				key.TypeID, gotext.Get("room"), key.RoomIndex)
		}
	}
}

// formatWeights renders a rarity vector as colored percentages.
func formatWeights(w catalog.RarityVector) string {
	total := 0.0
	for _, v := range w {
		total += v
	}
	if total <= 0 {
		return ColorSubtle.Sprint("(empty)")
	}
	parts := make([]string, 0, catalog.NumRarities)
	for r := 0; r < catalog.NumRarities; r++ {
		if w[r] <= 0 {
			continue
		}
		rarity := catalog.Rarity(r)
		parts = append(parts, RarityStyle(rarity).Sprintf("%s %.1f%%",
			rarity.String(), 100*w[r]/total))
	}
	return strings.Join(parts, " ")
}
