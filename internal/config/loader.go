package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadColors loads Color Match configuration.
// Search order: customPath -> ~/.arcade/configs/colors.yaml -> ./configs/colors.yaml -> embedded default
func LoadColors(customPath string) (ColorsConfig, error) {
	cfg, err := load("colors", customPath, DefaultColorsConfig)
	if err != nil {
		return cfg, err
	}
	if len(cfg.Levels) == 0 {
		return cfg, fmt.Errorf("config: colors: no levels defined")
	}
	for i, lvl := range cfg.Levels {
		if len(lvl.Colors) == 0 {
			return cfg, fmt.Errorf("config: colors: level %d has no colors", i+1)
		}
	}
	if cfg.Progression.MaxLevel > len(cfg.Levels) || cfg.Progression.MaxLevel == 0 {
		cfg.Progression.MaxLevel = len(cfg.Levels)
	}
	return cfg, nil
}

// LoadEmoji loads Emoji Match configuration.
// Search order: customPath -> ~/.arcade/configs/emoji.yaml -> ./configs/emoji.yaml -> embedded default
func LoadEmoji(customPath string) (EmojiConfig, error) {
	cfg, err := load("emoji", customPath, DefaultEmojiConfig)
	if err != nil {
		return cfg, err
	}
	if len(cfg.Emotions) < 2 || len(cfg.Scenarios) == 0 {
		return cfg, fmt.Errorf("config: emoji: need at least 2 emotions and 1 scenario")
	}
	known := make(map[string]bool, len(cfg.Emotions))
	for _, e := range cfg.Emotions {
		known[e.ID] = true
	}
	for _, s := range cfg.Scenarios {
		if !known[s.Emotion] {
			return cfg, fmt.Errorf("config: emoji: scenario %q names unknown emotion %q", s.Text, s.Emotion)
		}
	}
	return cfg, nil
}

// LoadMaths loads Multiplication Practice configuration.
// Search order: customPath -> ~/.arcade/configs/maths.yaml -> ./configs/maths.yaml -> embedded default
func LoadMaths(customPath string) (MathsConfig, error) {
	cfg, err := load("maths", customPath, DefaultMathsConfig)
	if err != nil {
		return cfg, err
	}
	if len(cfg.Tables) == 0 {
		return cfg, fmt.Errorf("config: maths: no tables defined")
	}
	if cfg.Choices < 2 {
		cfg.Choices = 2
	}
	if cfg.MaxMultiplier < 1 {
		cfg.MaxMultiplier = 12
	}
	// Multipliers are unique within a run.
	if cfg.Questions <= 0 || cfg.Questions > cfg.MaxMultiplier {
		cfg.Questions = cfg.MaxMultiplier
	}
	return cfg, nil
}

// LoadSafari loads Sound Safari configuration.
// Search order: customPath -> ~/.arcade/configs/safari.yaml -> ./configs/safari.yaml -> embedded default
func LoadSafari(customPath string) (SafariConfig, error) {
	cfg, err := load("safari", customPath, DefaultSafariConfig)
	if err != nil {
		return cfg, err
	}
	if len(cfg.Animals) == 0 {
		return cfg, fmt.Errorf("config: safari: no animals defined")
	}
	if cfg.Pan <= 0 || cfg.Pan > 1 {
		cfg.Pan = 0.8
	}
	return cfg, nil
}

// load resolves a game config through the search order. A custom path that
// cannot be read or parsed is an error; the other locations are best effort.
func load[T any](gameID, customPath string, fallback func() T) (T, error) {
	var cfg T

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := gameID + ".yaml"

	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			var user T
			if err := yaml.Unmarshal(data, &user); err == nil {
				return user, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		var local T
		if err := yaml.Unmarshal(data, &local); err == nil {
			return local, nil
		}
	}

	if err := yaml.Unmarshal(GetDefaultYAML(gameID), &cfg); err != nil {
		return fallback(), nil
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
