package model

import "strings"

// Ecosystem identifies the registry a dependency belongs to.
type Ecosystem string

const (
	EcosystemPyPI Ecosystem = "pypi"
	EcosystemNpm  Ecosystem = "npm"
)

func (e Ecosystem) String() string {
	return string(e)
}

// DependencySpec represents a dependency discovered in a manifest.
type DependencySpec struct {
	Name       string    `json:"name"`
	Version    string    `json:"version,omitempty"` // pinned version; empty for ranged specs
	Ecosystem  Ecosystem `json:"ecosystem"`
	SourcePath string    `json:"source_path"`
}

// Slug returns the canonical key used for caching and assessment dedup.
// Name comparison is case-insensitive across the system.
func (s DependencySpec) Slug() string {
	return string(s.Ecosystem) + ":" + strings.ToLower(s.Name)
}
