package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	DefaultSuffix  = "_noBG"
	DefaultModel   = "u2net"
	DefaultRocmGfx = "11.0.1"
	DefaultTimeout = 120
)

// Settings holds user-tunable options from config.json. All keys are
// optional; missing keys keep their defaults.
type Settings struct {
	// RembgBinary overrides rembg auto-detection when non-empty.
	RembgBinary  string `json:"rembg_binary"`
	OutputSuffix string `json:"output_suffix"`
	Model        string `json:"model"`
	// RocmGfxVersion is exported as HSA_OVERRIDE_GFX_VERSION for AMD GPUs.
	// null or "" disables the override (NVIDIA/CPU setups).
	RocmGfxVersion *string `json:"rocm_gfx_version"`
	TimeoutSeconds int     `json:"timeout_seconds"`
	// MaxPasses caps infinite-hop runs. 0 means unbounded.
	MaxPasses int `json:"max_passes"`
}

func DefaultSettings() Settings {
	rocm := DefaultRocmGfx
	return Settings{
		OutputSuffix:   DefaultSuffix,
		Model:          DefaultModel,
		RocmGfxVersion: &rocm,
		TimeoutSeconds: DefaultTimeout,
	}
}

// RocmGfx returns the configured GFX version, or "" when disabled.
func (s Settings) RocmGfx() string {
	if s.RocmGfxVersion == nil {
		return ""
	}
	return *s.RocmGfxVersion
}

// LoadSettings reads settings from path. A missing file yields defaults.
// A malformed file also yields defaults, together with the parse error so
// the caller can warn and carry on.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return DefaultSettings(), fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal over the defaults so absent keys keep their values.
	cfg := DefaultSettings()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultSettings(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = DefaultTimeout
	}
	if cfg.MaxPasses < 0 {
		cfg.MaxPasses = 0
	}
	if cfg.OutputSuffix == "" {
		cfg.OutputSuffix = DefaultSuffix
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	return cfg, nil
}

// SaveSettings writes settings as indented JSON, creating parent
// directories as needed.
func SaveSettings(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
