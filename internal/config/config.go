// Package config resolves doomgo's launch parameters: an
// IWAD path, optional PWAD overlays, the starting map, skill level,
// and a handful of gameplay switches. It follows a familiar emulator
// main's flag set shape (required path flag, int/bool toggles,
// flag.Parse then validate) layered with an optional on-disk YAML
// file for defaults a player doesn't want to retype every launch.
package config

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the resolved launch configuration, the union of
// doomgo.yaml defaults and command-line overrides (CLI always wins).
type Config struct {
	IWAD string `yaml:"iwad"`
	Files []string `yaml:"files"`
	Warp string `yaml:"warp"`
	Skill int `yaml:"skill"`
	Respawn bool `yaml:"respawn"`
	NoMonsters bool `yaml:"nomonsters"`
	Deathmatch bool `yaml:"deathmatch"`
	Turbo int `yaml:"turbo"`
	Scale int `yaml:"scale"`
	EnableLog bool `yaml:"log"`
}

// defaults mirrors vanilla's baseline launch behavior: skill 3
// (Hurt Me Plenty), no respawn/monsters-off/deathmatch, turbo 100
// (normal speed multiplier), window scale 3x (a comfortable default
// windowed size).
func defaults() Config {
	return Config{
		Warp: "E1M1",
		Skill: 3,
		Turbo: 100,
		Scale: 3,
	}
}

// Load reads an optional YAML file for defaults, then parses argv on
// top of it; a missing file is not an error (every field just keeps
// its built-in default), the same YAML-then-CLI config layering a
// settings file typically gets.
func Load(yamlPath string, args []string) (Config, error) {
	cfg := defaults()

	if yamlPath != "" {
		b, err := os.ReadFile(yamlPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("config: parse %s: %w", yamlPath, err)
			}
		case os.IsNotExist(err):
			// no config file present; built-in defaults stand.
		default:
			return cfg, fmt.Errorf("config: read %s: %w", yamlPath, err)
		}
	}

	fs := flag.NewFlagSet("doomgo", flag.ContinueOnError)
	iwad := fs.String("iwad", cfg.IWAD, "path to the IWAD file (doom.wad, doom2.wad, ...)")
	file := fs.String("file", "", "comma-separated PWAD paths to load on top of the IWAD")
	warp := fs.String("warp", cfg.Warp, "starting map name (e.g. E1M1 or MAP01)")
	skill := fs.Int("skill", cfg.Skill, "skill level 1-5")
	respawn := fs.Bool("respawn", cfg.Respawn, "monsters respawn after death")
	nomonsters := fs.Bool("nomonsters", cfg.NoMonsters, "disable monster spawns")
	deathmatch := fs.Bool("deathmatch", cfg.Deathmatch, "enable deathmatch rules")
	turbo := fs.Int("turbo", cfg.Turbo, "player move speed percentage, 10-400")
	scale := fs.Int("scale", cfg.Scale, "display scale (1-6)")
	enableLog := fs.Bool("log", cfg.EnableLog, "enable logging (disabled by default)")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	cfg.IWAD = *iwad
	cfg.Warp = *warp
	cfg.Skill = *skill
	cfg.Respawn = *respawn
	cfg.NoMonsters = *nomonsters
	cfg.Deathmatch = *deathmatch
	cfg.Turbo = *turbo
	cfg.Scale = *scale
	cfg.EnableLog = *enableLog
	if *file != "" {
		cfg.Files = splitFiles(*file)
	}

	return cfg, cfg.validate()
}

func splitFiles(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}

func (c Config) validate() error {
	if c.IWAD == "" {
		return fmt.Errorf("config: -iwad is required")
	}
	if c.Skill < 1 || c.Skill > 5 {
		return fmt.Errorf("config: skill must be 1-5, got %d", c.Skill)
	}
	if c.Scale < 1 || c.Scale > 6 {
		return fmt.Errorf("config: scale must be 1-6, got %d", c.Scale)
	}
	if c.Turbo < 10 || c.Turbo > 400 {
		return fmt.Errorf("config: turbo must be 10-400, got %d", c.Turbo)
	}
	return nil
}
