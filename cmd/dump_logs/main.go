// Command dump_logs runs a map headlessly for a fixed number of sim
// tics and writes the resulting log entries to a file, useful for
// inspecting thinker/mobj/specials behavior without opening a window.
// Mirrors a familiar headless dump tool shape (load a ROM, enable one
// component's logging, run N frames, dump entries), generalized from a
// single PPU-focused dump to any of doomgo's logged components.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/doomgo/doomgo/internal/debug"
	"github.com/doomgo/doomgo/internal/level"
	"github.com/doomgo/doomgo/internal/player"
	"github.com/doomgo/doomgo/internal/wad"
)

func main() {
	iwadPath := flag.String("iwad", "", "path to the IWAD file (doom.wad, doom2.wad, ...)")
	mapName := flag.String("warp", "E1M1", "map to load")
	logFile := flag.String("out", "logs.txt", "output log file")
	maxTics := flag.Int("tics", 35*5, "run for N sim tics then dump logs")
	component := flag.String("component", string(debug.ComponentMobj), "log component to dump (Mobj, Special, Level, BSP, Thinker, Player, Render, Host)")
	flag.Parse()

	if *iwadPath == "" {
		fmt.Println("Usage: dump_logs -iwad <path> [-warp <map>] [-out <file>] [-tics <N>] [-component <name>]")
		os.Exit(1)
	}

	iwadData, err := os.ReadFile(*iwadPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading IWAD: %v\n", err)
		os.Exit(1)
	}
	f, err := wad.Load(iwadData)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading IWAD: %v\n", err)
		os.Exit(1)
	}

	logger := debug.NewLogger(50000)
	want := debug.Component(*component)
	logger.SetComponentEnabled(want, true)
	logger.SetMinLevel(debug.LogLevelDebug)

	lv, err := level.New(f, *mapName, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading map %s: %v\n", *mapName, err)
		os.Exit(1)
	}

	cmds := make([]player.TicCmd, len(lv.Players))
	fmt.Printf("Running %s for %d tics...\n", *mapName, *maxTics)
	for i := 0; i < *maxTics; i++ {
		lv.Tick(1.0/35.0, cmds)
		if exited, _ := lv.Exited(); exited {
			break
		}
	}

	entries := logger.GetEntries()
	var matched []debug.LogEntry
	for _, entry := range entries {
		if entry.Component == want {
			matched = append(matched, entry)
		}
	}

	file, err := os.Create(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating log file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	fmt.Fprintf(file, "%s logs from %s, map %s (%d entries)\n", *component, *iwadPath, *mapName, len(matched))
	fmt.Fprintf(file, "===========================================\n\n")
	for _, entry := range matched {
		fmt.Fprintf(file, "%s\n", entry.Format())
	}

	fmt.Printf("Dumped %d %s log entries to %s\n", len(matched), *component, *logFile)
}
