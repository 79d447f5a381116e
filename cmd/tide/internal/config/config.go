// Package config loads the optional tide.yaml project configuration and
// resolves project metadata from go.mod.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"
)

// Config represents the optional tide.yaml configuration.
type Config struct {
	App    AppConfig    `yaml:"app"`
	Engine EngineConfig `yaml:"engine"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
	ID   string `yaml:"id,omitempty"`
}

// EngineConfig contains engine settings.
type EngineConfig struct {
	FPS    int     `yaml:"fps,omitempty"`
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	AppName    string
	FPS        int
}

// LoadOptional reads tide.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, "tide.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read tide.yaml: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse tide.yaml: %w", err)
	}

	return &cfg, nil
}

// FindProjectRoot walks up from dir looking for a go.mod file.
func FindProjectRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(abs, "go.mod")); err == nil {
			return abs, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("no go.mod found above %s", dir)
		}
		abs = parent
	}
}

// Resolve loads tide.yaml (if present) and resolves defaults from go.mod.
func Resolve(dir string) (*Resolved, error) {
	root, err := FindProjectRoot(dir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return nil, fmt.Errorf("failed to read go.mod: %w", err)
	}
	modulePath := modfile.ModulePath(data)
	if modulePath == "" {
		return nil, fmt.Errorf("go.mod in %s has no module path", root)
	}

	cfg, err := LoadOptional(root)
	if err != nil {
		return nil, err
	}

	appName := cfg.App.Name
	if appName == "" {
		appName = filepath.Base(modulePath)
	}
	fps := cfg.Engine.FPS
	if fps <= 0 {
		fps = 60
	}

	return &Resolved{
		Root:       root,
		ModulePath: modulePath,
		AppName:    appName,
		FPS:        fps,
	}, nil
}
