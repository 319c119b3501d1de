// Package config persists small user preferences alongside the library.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const settingsFile = "settings.yaml"

// Settings remembers the last-used form defaults so a new prompt starts
// where the previous one left off.
type Settings struct {
	PromptType string `yaml:"prompt_type"`
	FolderID   string `yaml:"folder_id"`
	Model      string `yaml:"model"`
}

// Load reads settings from the library root. A missing or unreadable file
// yields zero settings; preferences are never worth failing startup over.
func Load(rootPath string) Settings {
	var s Settings
	data, err := os.ReadFile(filepath.Join(rootPath, settingsFile))
	if err != nil {
		return s
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}
	}
	return s
}

// Save writes settings to the library root.
func Save(rootPath string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(rootPath, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(rootPath, settingsFile), data, 0644)
}
