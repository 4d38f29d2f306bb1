package config

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

const BuildingsSection = "buildings"

// BuildingRegistry maps source file stems to building display names:
//
//	[buildings]
//	sci_blk = Science Block
type BuildingRegistry struct {
	cfg *ini.File
}

func NewBuildingRegistry(path string) (*BuildingRegistry, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{Insensitive: true}, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load building registry %s: %w", path, err)
	}
	return &BuildingRegistry{cfg: cfg}, nil
}

// Lookup matches stems case-insensitively
func (r *BuildingRegistry) Lookup(stem string) (string, bool) {
	section, err := r.cfg.GetSection(BuildingsSection)
	if err != nil {
		return "", false
	}
	key, err := section.GetKey(strings.ToLower(strings.TrimSpace(stem)))
	if err != nil {
		return "", false
	}
	name := strings.TrimSpace(key.String())
	return name, name != ""
}

// Stems lists the registered file stems
func (r *BuildingRegistry) Stems() []string {
	section, err := r.cfg.GetSection(BuildingsSection)
	if err != nil {
		return nil
	}
	return section.KeyStrings()
}
