// Package venv implements the virtual-environment registry: a persisted
// store of metadata about Python virtual environments living elsewhere on
// disk. The registry survives file corruption via rotated backups, writes
// atomically so readers never observe a half-written file, and reconciles
// its own state against a filesystem that changes outside its control.
package venv

import (
	"encoding/json"
	"sort"
	"time"
)

// RegistryVersion is the current schema version written to disk.
// Present for forward compatibility; not currently branched on.
const RegistryVersion = "1.0.0"

const (
	defaultRegistryDescription = "Registry of active Python virtual environments"
	defaultManagedBy           = "agentic framework"
)

// PackageInfo is one entry of an installed-package snapshot.
type PackageInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// EnvironmentRecord holds the tracked metadata for a single virtual
// environment. Path is the canonical absolute path and the unique key.
type EnvironmentRecord struct {
	Path          string        `json:"path"`
	ProjectName   string        `json:"project_name"`
	PythonVersion string        `json:"python_version"`
	Description   string        `json:"description"`
	CreatedAt     time.Time     `json:"created_at"`
	LastUsed      time.Time     `json:"last_used"`
	LastUpdated   time.Time     `json:"last_updated"`
	Packages      []PackageInfo `json:"packages,omitempty"`
}

// Metadata holds free-form registry notes.
type Metadata struct {
	Description string `json:"description"`
	ManagedBy   string `json:"managed_by"`
	Note        string `json:"note,omitempty"`
}

// Registry is the in-memory form of the persisted registry. Environments is
// keyed by canonical path, which enforces at most one record per path.
type Registry struct {
	Environments map[string]*EnvironmentRecord
	LastUpdated  time.Time
	Version      string
	Metadata     Metadata
}

// NewRegistry returns an empty registry with the default shape.
func NewRegistry() *Registry {
	return &Registry{
		Environments: make(map[string]*EnvironmentRecord),
		Version:      RegistryVersion,
		Metadata: Metadata{
			Description: defaultRegistryDescription,
			ManagedBy:   defaultManagedBy,
		},
	}
}

// registryDocument is the wire format of the registry file.
type registryDocument struct {
	VirtualEnvironments []*EnvironmentRecord `json:"virtual_environments"`
	LastUpdated         time.Time            `json:"last_updated"`
	RegistryVersion     string               `json:"registry_version"`
	Metadata            Metadata             `json:"metadata"`
}

// MarshalJSON serializes the registry in the wire format, with environments
// sorted by path for deterministic output.
func (r *Registry) MarshalJSON() ([]byte, error) {
	doc := registryDocument{
		VirtualEnvironments: make([]*EnvironmentRecord, 0, len(r.Environments)),
		LastUpdated:         r.LastUpdated,
		RegistryVersion:     r.Version,
		Metadata:            r.Metadata,
	}
	for _, rec := range r.Environments {
		doc.VirtualEnvironments = append(doc.VirtualEnvironments, rec)
	}
	sort.Slice(doc.VirtualEnvironments, func(i, j int) bool {
		return doc.VirtualEnvironments[i].Path < doc.VirtualEnvironments[j].Path
	})
	return json.Marshal(doc)
}

// UnmarshalJSON parses the wire format and merges missing top-level keys with
// the default shape. Duplicate paths collapse to the last record seen, which
// keeps the per-path uniqueness invariant even for hand-edited files.
func (r *Registry) UnmarshalJSON(data []byte) error {
	var doc registryDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	r.Environments = make(map[string]*EnvironmentRecord, len(doc.VirtualEnvironments))
	for _, rec := range doc.VirtualEnvironments {
		if rec == nil || rec.Path == "" {
			continue
		}
		r.Environments[rec.Path] = rec
	}

	r.LastUpdated = doc.LastUpdated
	r.Version = doc.RegistryVersion
	if r.Version == "" {
		r.Version = RegistryVersion
	}
	r.Metadata = doc.Metadata
	if r.Metadata.Description == "" {
		r.Metadata.Description = defaultRegistryDescription
	}
	if r.Metadata.ManagedBy == "" {
		r.Metadata.ManagedBy = defaultManagedBy
	}
	return nil
}

// Records returns the environments sorted by last-used time, most recent first.
func (r *Registry) Records() []*EnvironmentRecord {
	records := make([]*EnvironmentRecord, 0, len(r.Environments))
	for _, rec := range r.Environments {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].LastUsed.Equal(records[j].LastUsed) {
			return records[i].Path < records[j].Path
		}
		return records[i].LastUsed.After(records[j].LastUsed)
	})
	return records
}
