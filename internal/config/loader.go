package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadHarvest loads Harvest configuration.
// Search order: customPath -> ~/.harvest/configs/harvest.yaml -> ./configs/harvest.yaml -> embedded default.
// Files only need to name the keys they change; everything else keeps the
// embedded default.
func LoadHarvest(customPath string) (HarvestConfig, error) {
	base := embeddedHarvest()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return base, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := overlayHarvest(base, data)
		if err != nil {
			return base, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Unreadable or malformed files further down the chain are skipped.
	candidates := []string{userConfigPath("harvest.yaml"), filepath.Join("configs", "harvest.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := overlayHarvest(base, data); err == nil {
			return cfg, cfg.Validate()
		}
	}

	return base, nil
}

// embeddedHarvest parses the embedded default, falling back to the
// hardcoded one.
func embeddedHarvest() HarvestConfig {
	var cfg HarvestConfig
	if err := yaml.Unmarshal(defaultHarvestYAML, &cfg); err != nil {
		return DefaultHarvestConfig()
	}
	return cfg
}

// overlayHarvest applies YAML data on top of base.
func overlayHarvest(base HarvestConfig, data []byte) (HarvestConfig, error) {
	cfg := base
	// Copy the theme map so the overlay cannot leak into base.
	cfg.Themes = make(map[string]Theme, len(base.Themes))
	for name, th := range base.Themes {
		cfg.Themes[name] = th
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".harvest", "configs", filename)
}

// LoadTheme reads a standalone theme file.
func LoadTheme(path string) (Theme, error) {
	var th Theme
	data, err := os.ReadFile(path)
	if err != nil {
		return th, fmt.Errorf("config: read theme %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &th); err != nil {
		return th, fmt.Errorf("config: parse theme %s: %w", path, err)
	}
	return th, nil
}

// ResolveTheme returns the theme selected by render.theme: a theme defined
// in the config, or else a theme file at that path.
func (c HarvestConfig) ResolveTheme() (Theme, error) {
	name := c.Render.Theme
	if th, ok := c.Themes[name]; ok {
		return th, nil
	}
	if name == "" {
		return Theme{}, fmt.Errorf("config: no theme selected")
	}
	return LoadTheme(name)
}
