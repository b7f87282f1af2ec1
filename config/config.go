// Package config loads and hot-reloads the YAML file that selects a
// device embodiment and its tuning knobs, in the shape of the config
// packages elsewhere in the corpus (a struct with defaults, a Load that
// falls back to Default on a missing file, a Watch that re-parses on
// change).
package config

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Config holds the knobs a device embodiment needs at startup, plus the
// subset that is safe to change without a screen resize.
type Config struct {
	// Backend names the embodiment to boot: "native", "tiles", "mirror".
	Backend string `yaml:"backend"`

	// Confinement is the tile cache's R (image count == tile grid side).
	Confinement int `yaml:"confinement"`

	FontPath   string `yaml:"font_path"`
	FontSize   int    `yaml:"font_size"`
	CellWidth  int    `yaml:"cell_width"`
	CellHeight int    `yaml:"cell_height"`

	Lines uint16 `yaml:"lines"`
	Span  uint16 `yaml:"span"`

	// MirrorListen is the mirror/net websocket listen address.
	MirrorListen string `yaml:"mirror_listen"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration used when no file exists.
func Default() *Config {
	return &Config{
		Backend:      "native",
		Confinement:  4,
		FontPath:     "./res/fonts/CascadiaMono-Regular.ttf",
		FontSize:     16,
		CellWidth:    10,
		CellHeight:   20,
		Lines:        40,
		Span:         120,
		MirrorListen: "127.0.0.1:7681",
		LogLevel:     "info",
	}
}

// Path returns the default config file location under the user's config
// directory.
func Path() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "cellmatrix", "config.yaml")
}

// Load reads and parses path, or returns Default if path does not exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Watcher re-parses the config file on change and hands the result to
// onChange. Only LogLevel and MirrorListen are meant to be applied live
// by callers -- Backend/Confinement/cell geometry changes require a
// restart, since they are baked into an already-running embodiment.
type Watcher struct {
	fsw *fsnotify.Watcher
	path string
}

// Watch starts watching path for writes. Call Close when done.
func Watch(path string, onChange func(*Config)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{fsw: fsw, path: path}
	go w.loop(onChange)
	return w, nil
}

func (w *Watcher) loop(onChange func(*Config)) {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				continue
			}
			onChange(cfg)

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
