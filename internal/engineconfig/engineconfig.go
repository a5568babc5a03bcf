package engineconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// EngineConfigPath is the default viewer prefs file, relative to the process working directory.
const EngineConfigPath = "config/viewer.json"

// EnginePrefs holds viewer-only preferences (window, overlays, asset watching). Persisted across runs.
// The polyline itself lives in its asset file, not here.
type EnginePrefs struct {
	ShowFPS      bool  `json:"show_fps"`
	ShowStats    bool  `json:"show_stats"`
	GridVisible  bool  `json:"grid_visible"`
	Fullscreen   bool  `json:"fullscreen"`
	WindowWidth  int32 `json:"window_width"`
	WindowHeight int32 `json:"window_height"`
	TargetFPS    int32 `json:"target_fps"`
	// WatchAsset rebuilds the ribbon whenever the asset file changes on disk.
	WatchAsset bool `json:"watch_asset"`
	DebounceMS int  `json:"debounce_ms"`
}

// Default returns default viewer preferences (windowed 1280x720, grid and stats on).
func Default() EnginePrefs {
	return EnginePrefs{
		ShowFPS:      false,
		ShowStats:    true,
		GridVisible:  true,
		Fullscreen:   false,
		WindowWidth:  1280,
		WindowHeight: 720,
		TargetFPS:    60,
		WatchAsset:   true,
		DebounceMS:   150,
	}
}

// Load reads preferences from path. If the file is missing or invalid, returns
// Default() and does not create a file. Fields absent from the file keep their defaults.
func Load(path string) (EnginePrefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil
	}
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	p.sanitize()
	return p, nil
}

// Save writes preferences to path, creating the directory if needed.
func Save(path string, p EnginePrefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// sanitize replaces values raylib can't open a window with.
func (p *EnginePrefs) sanitize() {
	d := Default()
	if p.WindowWidth <= 0 {
		p.WindowWidth = d.WindowWidth
	}
	if p.WindowHeight <= 0 {
		p.WindowHeight = d.WindowHeight
	}
	if p.TargetFPS <= 0 {
		p.TargetFPS = d.TargetFPS
	}
	if p.DebounceMS < 0 {
		p.DebounceMS = 0
	}
}
