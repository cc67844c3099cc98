// Package config loads the dockyard TOML configuration.
//
// The embedded default.toml is decoded first and the user's file on top of
// it, so a user file only needs the keys it changes. The user file lives at
// $XDG_CONFIG_HOME/dockyard/config.toml (or the platform equivalent).
package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/dockyard/pkg/dock"
	"github.com/matzehuels/dockyard/pkg/drag"
	"github.com/matzehuels/dockyard/pkg/layout"
)

//go:embed default.toml
var defaultTOML []byte

// Store backends.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config is the top-level TOML structure.
type Config struct {
	Docking Docking `toml:"docking"`
	Drag    Drag    `toml:"drag"`
	Store   Store   `toml:"store"`
	Theme   Theme   `toml:"theme"`
}

type Docking struct {
	DefaultProportion    float64 `toml:"default_proportion"`
	RootProportion       float64 `toml:"root_proportion"`
	ProportionConvention string  `toml:"proportion_convention"`
	Deregister           string  `toml:"deregister"`
	DividerSize          int     `toml:"divider_size"`
	TabHeaderHeight      int     `toml:"tab_header_height"`
}

type Drag struct {
	HandleSize   int `toml:"handle_size"`
	HandleMargin int `toml:"handle_margin"`
}

type Store struct {
	Backend     string `toml:"backend"`
	Dir         string `toml:"dir"`
	RedisAddr   string `toml:"redis_addr"`
	RedisPrefix string `toml:"redis_prefix"`
}

// Theme holds the light and dark palettes and which one is active.
type Theme struct {
	Mode  string  `toml:"mode"`
	Light Palette `toml:"light"`
	Dark  Palette `toml:"dark"`
}

// Palette holds the colours used to draw handles, overlays and title bars,
// as hex strings.
type Palette struct {
	HandlesBackground  string `toml:"handles_background"`
	HandlesBorder      string `toml:"handles_border"`
	HandlesOutline     string `toml:"handles_outline"`
	HandlesFill        string `toml:"handles_fill"`
	Overlay            string `toml:"overlay"`
	OverlayBorder      string `toml:"overlay_border"`
	TitlebarBackground string `toml:"titlebar_background"`
	TitlebarBorder     string `toml:"titlebar_border"`
}

// Default returns the embedded defaults.
func Default() Config {
	var c Config
	if _, err := toml.Decode(string(defaultTOML), &c); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return c
}

// DefaultTOML returns the embedded default file, for writing a starter config.
func DefaultTOML() []byte { return defaultTOML }

// Dir returns the dockyard config directory.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "dockyard"), nil
}

// Path returns the default config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config at path over the defaults. An empty path means
// [Path]; a missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("read config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes data over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	c := Default()
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Default(), fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := c.Validate(); err != nil {
		return Default(), err
	}
	return c, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	d := c.Docking
	if !(d.DefaultProportion > 0 && d.DefaultProportion < 1) {
		return fmt.Errorf("docking.default_proportion %v must be within (0,1)", d.DefaultProportion)
	}
	if !(d.RootProportion > 0 && d.RootProportion < 1) {
		return fmt.Errorf("docking.root_proportion %v must be within (0,1)", d.RootProportion)
	}
	if _, err := dock.ParseProportionConvention(d.ProportionConvention); err != nil {
		return fmt.Errorf("docking.proportion_convention: %w", err)
	}
	if _, err := parseDeregister(d.Deregister); err != nil {
		return err
	}
	if d.DividerSize < 0 || d.TabHeaderHeight < 0 {
		return fmt.Errorf("docking sizes must not be negative")
	}
	if c.Drag.HandleSize <= 0 || c.Drag.HandleMargin < 0 {
		return fmt.Errorf("drag.handle_size must be positive and drag.handle_margin not negative")
	}
	switch c.Store.Backend {
	case BackendFile, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("store.backend %q must be file, redis or memory", c.Store.Backend)
	}
	switch c.Theme.Mode {
	case "light", "dark":
	default:
		return fmt.Errorf("theme.mode %q must be light or dark", c.Theme.Mode)
	}
	return nil
}

func parseDeregister(s string) (dock.DeregisterPolicy, error) {
	switch s {
	case "", "require-undocked":
		return dock.DeregisterRequireUndocked, nil
	case "auto-undock":
		return dock.DeregisterAutoUndock, nil
	}
	return dock.DeregisterRequireUndocked, fmt.Errorf("docking.deregister %q must be require-undocked or auto-undock", s)
}

// DockOptions returns the Space options described by the config.
func (c Config) DockOptions(logger *log.Logger) dock.Options {
	conv, _ := dock.ParseProportionConvention(c.Docking.ProportionConvention)
	dereg, _ := parseDeregister(c.Docking.Deregister)
	return dock.Options{
		Logger:          logger,
		Convention:      conv,
		Deregister:      dereg,
		DividerSize:     c.Docking.DividerSize,
		TabHeaderHeight: c.Docking.TabHeaderHeight,
	}
}

// DragConfig returns the drag zone configuration.
func (c Config) DragConfig() drag.Config {
	return drag.Config{
		HandleSize:     c.Drag.HandleSize,
		HandleMargin:   c.Drag.HandleMargin,
		Proportion:     c.Docking.DefaultProportion,
		RootProportion: c.Docking.RootProportion,
	}
}

// OpenStore opens the configured named-layout store.
func (c Config) OpenStore(ctx context.Context) (layout.Store, error) {
	switch c.Store.Backend {
	case BackendMemory:
		return layout.NewMemoryStore(), nil
	case BackendRedis:
		return layout.NewRedisStore(ctx, layout.RedisConfig{
			Addr:   c.Store.RedisAddr,
			Prefix: c.Store.RedisPrefix,
		})
	default:
		return layout.NewFileStore(c.Store.Dir)
	}
}

// Palette returns the active palette.
func (t Theme) Palette() Palette {
	if t.Mode == "light" {
		return t.Light
	}
	return t.Dark
}
