package venv

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewRegistry_DefaultShape(t *testing.T) {
	reg := NewRegistry()

	require.NotNil(t, reg.Environments)
	require.Empty(t, reg.Environments)
	require.Equal(t, RegistryVersion, reg.Version)
	require.NotEmpty(t, reg.Metadata.Description)
	require.NotEmpty(t, reg.Metadata.ManagedBy)
	require.Empty(t, reg.Metadata.Note)
}

func TestRegistry_MarshalSortsByPath(t *testing.T) {
	reg := NewRegistry()
	reg.Environments["/b"] = &EnvironmentRecord{Path: "/b", ProjectName: "beta"}
	reg.Environments["/a"] = &EnvironmentRecord{Path: "/a", ProjectName: "alpha"}

	data, err := json.Marshal(reg)
	require.NoError(t, err)

	var doc struct {
		VirtualEnvironments []EnvironmentRecord `json:"virtual_environments"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.VirtualEnvironments, 2)
	require.Equal(t, "/a", doc.VirtualEnvironments[0].Path)
	require.Equal(t, "/b", doc.VirtualEnvironments[1].Path)
}

func TestRegistry_UnmarshalMergesDefaults(t *testing.T) {
	// Top-level keys missing: version and metadata filled in, never dropped.
	var reg Registry
	require.NoError(t, json.Unmarshal([]byte(`{"virtual_environments": []}`), &reg))

	require.Equal(t, RegistryVersion, reg.Version)
	require.NotEmpty(t, reg.Metadata.Description)
	require.NotEmpty(t, reg.Metadata.ManagedBy)
	require.NotNil(t, reg.Environments)
}

func TestRegistry_UnmarshalPreservesExistingValues(t *testing.T) {
	input := `{
		"virtual_environments": [{"path": "/x", "project_name": "x"}],
		"registry_version": "0.9.0",
		"metadata": {"description": "custom", "managed_by": "me", "note": "hand-edited"}
	}`

	var reg Registry
	require.NoError(t, json.Unmarshal([]byte(input), &reg))

	require.Equal(t, "0.9.0", reg.Version)
	require.Equal(t, "custom", reg.Metadata.Description)
	require.Equal(t, "hand-edited", reg.Metadata.Note)
	require.Contains(t, reg.Environments, "/x")
}

func TestRegistry_UnmarshalCollapsesDuplicatePaths(t *testing.T) {
	input := `{
		"virtual_environments": [
			{"path": "/dup", "project_name": "first"},
			{"path": "/dup", "project_name": "second"}
		]
	}`

	var reg Registry
	require.NoError(t, json.Unmarshal([]byte(input), &reg))

	require.Len(t, reg.Environments, 1)
	require.Equal(t, "second", reg.Environments["/dup"].ProjectName)
}

func TestRegistry_UnmarshalRejectsWrongShape(t *testing.T) {
	var reg Registry
	require.Error(t, json.Unmarshal([]byte(`"not an object"`), &reg))
	require.Error(t, json.Unmarshal([]byte(`{"virtual_environments": "nope"}`), &reg))
}

func TestRegistry_RecordsOrderedByLastUsedDesc(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	reg := NewRegistry()
	reg.Environments["/old"] = &EnvironmentRecord{Path: "/old", LastUsed: base}
	reg.Environments["/new"] = &EnvironmentRecord{Path: "/new", LastUsed: base.Add(time.Hour)}
	reg.Environments["/mid"] = &EnvironmentRecord{Path: "/mid", LastUsed: base.Add(time.Minute)}

	records := reg.Records()
	require.Len(t, records, 3)
	require.Equal(t, "/new", records[0].Path)
	require.Equal(t, "/mid", records[1].Path)
	require.Equal(t, "/old", records[2].Path)
}
