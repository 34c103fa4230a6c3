// Command doomgo is the playable entry point: resolve launch config,
// load an IWAD (a -file PWAD list is reported and ignored; no lump
// overlay is applied), spin up a Level, and drive it
// through internal/host's window loop. Mirrors a familiar emulator
// main's shape (flag/YAML config, optional logger, a single blocking
// Run call), generalized from one ROM file to DOOM's IWAD+PWAD+map-name
// launch surface.
package main

import (
	"fmt"
	"os"

	"github.com/doomgo/doomgo/internal/config"
	"github.com/doomgo/doomgo/internal/debug"
	"github.com/doomgo/doomgo/internal/host"
	"github.com/doomgo/doomgo/internal/level"
	"github.com/doomgo/doomgo/internal/player"
	"github.com/doomgo/doomgo/internal/render"
	"github.com/doomgo/doomgo/internal/wad"
)

// defaultYAMLPath is doomgo's optional on-disk settings file; a missing
// file is not an error (config.Load just keeps its built-in defaults).
const defaultYAMLPath = "doomgo.yaml"

func main() {
	cfg, err := config.Load(defaultYAMLPath, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "doomgo: %v\n", err)
		os.Exit(1)
	}

	var logger *debug.Logger
	if cfg.EnableLog {
		logger = debug.NewLogger(50000)
		logger.SetComponentEnabled(debug.ComponentBSP, true)
		logger.SetComponentEnabled(debug.ComponentThinker, true)
		logger.SetComponentEnabled(debug.ComponentMobj, true)
		logger.SetComponentEnabled(debug.ComponentSpecial, true)
		logger.SetComponentEnabled(debug.ComponentPlayer, true)
		logger.SetComponentEnabled(debug.ComponentLevel, true)
		logger.SetComponentEnabled(debug.ComponentRender, true)
		logger.SetComponentEnabled(debug.ComponentHost, true)
	}

	iwadData, err := os.ReadFile(cfg.IWAD)
	if err != nil {
		fmt.Fprintf(os.Stderr, "doomgo: reading IWAD %s: %v\n", cfg.IWAD, err)
		os.Exit(1)
	}
	f, err := wad.Load(iwadData)
	if err != nil {
		fmt.Fprintf(os.Stderr, "doomgo: loading IWAD %s: %v\n", cfg.IWAD, err)
		os.Exit(1)
	}
	if len(cfg.Files) > 0 {
		// PWAD-over-IWAD lump merging has no caller in this module yet;
		// every component so far only reads a single wad.File. Warn
		// rather than silently ignoring the requested overlay.
		fmt.Fprintf(os.Stderr, "doomgo: warning: -file PWAD overlay not yet supported, ignoring %v\n", cfg.Files)
	}

	lv, err := level.New(f, cfg.Warp, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "doomgo: %v\n", err)
		os.Exit(1)
	}
	if len(lv.Players) == 0 {
		fmt.Fprintf(os.Stderr, "doomgo: map %s has no player 1 start\n", cfg.Warp)
		os.Exit(1)
	}

	renderer := render.New(lv.Map, lv.Pics, lv.Mobjs(), render.DefaultWidth, render.DefaultHeight, logger)
	draw := &levelRenderer{lv: lv, renderer: renderer}

	h, err := host.New(render.DefaultWidth, render.DefaultHeight, cfg.Scale, lv.Pics, draw, lv.Tick)
	if err != nil {
		fmt.Fprintf(os.Stderr, "doomgo: %v\n", err)
		os.Exit(1)
	}

	if err := h.Run(len(lv.Players)); err != nil {
		fmt.Fprintf(os.Stderr, "doomgo: %v\n", err)
		os.Exit(1)
	}
}

// levelRenderer adapts render.Renderer's per-viewer Render call to
// host.Renderer's argument-less shape, closing over the Level so host
// never needs to import internal/level or internal/render itself.
type levelRenderer struct {
	lv       *level.Level
	renderer *render.Renderer
}

func (d *levelRenderer) Render() host.Framebuffer {
	var viewer *player.Player
	if len(d.lv.Players) > 0 {
		viewer = d.lv.Players[0]
	}
	return d.renderer.Render(viewer)
}
