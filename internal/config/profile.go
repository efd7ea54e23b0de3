// Package config handles configuration structures.
package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// CaptureProfile is a standalone capture description. Applying a profile
// overrides the capture and output blocks of the global configuration, so
// capture setups can be switched without editing the main config file.
type CaptureProfile struct {
	Name      string         `json:"name" yaml:"name"`
	Source    string         `json:"source" yaml:"source"`       // rawsock / afpacket / pcapfile
	Interface string         `json:"interface" yaml:"interface"` // empty = all interfaces (rawsock only)
	SnapLen   int            `json:"snap_len" yaml:"snap_len"`
	Options   map[string]any `json:"options" yaml:"options"` // source-specific settings
	HexDump   bool           `json:"hex_dump" yaml:"hex_dump"`
}

// Validate validates a capture profile and applies defaults.
func (p *CaptureProfile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	if p.Source == "" {
		return fmt.Errorf("profile source is required")
	}
	if p.SnapLen < 0 {
		return fmt.Errorf("snap_len must not be negative, got %d", p.SnapLen)
	}
	if p.SnapLen == 0 {
		p.SnapLen = 65536 // Default snap length
	}
	return nil
}

// Apply overrides the capture and output blocks of cfg with the profile.
func (p *CaptureProfile) Apply(cfg *GlobalConfig) {
	cfg.Capture.Source = p.Source
	cfg.Capture.Interface = p.Interface
	cfg.Capture.SnapLen = p.SnapLen
	cfg.Capture.Options = p.Options
	cfg.Output.HexDump = p.HexDump
}

// ParseProfile parses a capture profile from JSON.
func ParseProfile(data []byte) (*CaptureProfile, error) {
	var p CaptureProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// ParseProfileYAML parses a capture profile from YAML.
func ParseProfileYAML(data []byte) (*CaptureProfile, error) {
	var p CaptureProfile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// ParseProfileAuto parses a capture profile, detecting the format from
// the file extension (.json, .yaml, .yml).
func ParseProfileAuto(data []byte, filename string) (*CaptureProfile, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return ParseProfile(data)
	case ".yaml", ".yml":
		return ParseProfileYAML(data)
	default:
		return nil, fmt.Errorf("unsupported profile format %q (must be .json, .yaml or .yml)", filepath.Ext(filename))
	}
}
