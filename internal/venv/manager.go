package venv

import (
	"fmt"
	"os"
	"time"

	"github.com/agentic-framework/agentic-core/internal/log"
)

// Manager implements the registry operations on top of the store and
// verifier. Every operation is load -> mutate -> save; a failed save means
// the mutation was not committed.
type Manager struct {
	store    *Store
	verifier *Verifier
	now      func() time.Time
}

// NewManager creates a manager over the given store and verifier.
func NewManager(store *Store, verifier *Verifier) *Manager {
	return &Manager{store: store, verifier: verifier, now: time.Now}
}

// AddOptions controls an Add call.
type AddOptions struct {
	Path          string
	ProjectName   string
	PythonVersion string // probed when empty
	Description   string // defaulted when empty
	Verify        bool   // run structural verification before inserting
	Force         bool   // insert even when verification reports Invalid
}

// Add registers the environment, upserting on canonical path: an existing
// record keeps its created_at while supplied fields overwrite. Returns
// ErrNotFound when the directory is missing and ErrInvalidEnvironment when
// verification fails without Force.
func (m *Manager) Add(opts AddOptions) (*EnvironmentRecord, error) {
	canonical, err := CanonicalPath(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("canonicalizing path: %w", err)
	}

	if opts.Verify && !opts.Force {
		switch m.verifier.Verify(canonical) {
		case StatusMissing:
			return nil, fmt.Errorf("%w: %s", ErrNotFound, canonical)
		case StatusInvalid:
			return nil, fmt.Errorf("%w: %s", ErrInvalidEnvironment, canonical)
		}
	} else {
		// The directory must exist even with --no-verify or --force; the
		// escape hatch covers structure the verifier cannot model, not
		// absent paths.
		info, err := os.Stat(canonical)
		if err != nil || !info.IsDir() {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, canonical)
		}
	}

	reg, err := m.store.Load()
	if err != nil {
		return nil, err
	}

	now := m.now()
	rec, exists := reg.Environments[canonical]
	if exists {
		log.Info(log.CatRegistry, "updating registered environment", "path", canonical)
		rec.ProjectName = opts.ProjectName
		if opts.PythonVersion != "" {
			rec.PythonVersion = opts.PythonVersion
		}
		if opts.Description != "" {
			rec.Description = opts.Description
		}
		rec.LastUpdated = now
	} else {
		version := opts.PythonVersion
		if version == "" {
			version = m.verifier.PythonVersion(canonical)
		}
		description := opts.Description
		if description == "" {
			description = fmt.Sprintf("Virtual environment for %s", opts.ProjectName)
		}
		rec = &EnvironmentRecord{
			Path:          canonical,
			ProjectName:   opts.ProjectName,
			PythonVersion: version,
			Description:   description,
			CreatedAt:     now,
			LastUsed:      now,
			LastUpdated:   now,
		}
		reg.Environments[canonical] = rec
		log.Info(log.CatRegistry, "added environment", "path", canonical, "project", opts.ProjectName)
	}

	if err := m.store.Save(reg); err != nil {
		return nil, err
	}
	return rec, nil
}

// Remove drops records matching the canonical path or, when name is given,
// every record with that project name. Returns the number removed;
// ErrNotRegistered when nothing matched.
func (m *Manager) Remove(path, projectName string) (int, error) {
	if path == "" && projectName == "" {
		return 0, fmt.Errorf("either a path or a project name is required")
	}

	canonical := ""
	if path != "" {
		var err error
		canonical, err = CanonicalPath(path)
		if err != nil {
			return 0, fmt.Errorf("canonicalizing path: %w", err)
		}
	}

	reg, err := m.store.Load()
	if err != nil {
		return 0, err
	}

	removed := 0
	for key, rec := range reg.Environments {
		if (canonical != "" && key == canonical) ||
			(projectName != "" && rec.ProjectName == projectName) {
			delete(reg.Environments, key)
			removed++
			log.Info(log.CatRegistry, "removed environment", "path", key, "project", rec.ProjectName)
		}
	}
	if removed == 0 {
		return 0, ErrNotRegistered
	}

	if err := m.store.Save(reg); err != nil {
		return 0, err
	}
	return removed, nil
}

// ListEntry pairs a record with its live verification status. The status is
// computed at list time and never persisted.
type ListEntry struct {
	Record *EnvironmentRecord
	Status Status
}

// List returns all records ordered by last-used time descending, each
// annotated with a fresh verification.
func (m *Manager) List() ([]ListEntry, error) {
	reg, err := m.store.Load()
	if err != nil {
		return nil, err
	}

	records := reg.Records()
	entries := make([]ListEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, ListEntry{
			Record: rec,
			Status: m.verifier.Verify(rec.Path),
		})
	}
	return entries, nil
}

// CheckResult is the outcome of a Check call. Record is nil when the status
// is StatusNotRegistered.
type CheckResult struct {
	Record *EnvironmentRecord
	Status Status
}

// Check looks up a record by path or project name and re-verifies it live.
// A Valid result counts as a use and refreshes last_used.
func (m *Manager) Check(path, projectName string) (CheckResult, error) {
	if path == "" && projectName == "" {
		return CheckResult{}, fmt.Errorf("either a path or a project name is required")
	}

	reg, rec, err := m.find(path, projectName)
	if err != nil {
		return CheckResult{}, err
	}
	if rec == nil {
		return CheckResult{Status: StatusNotRegistered}, nil
	}

	status := m.verifier.Verify(rec.Path)
	if status == StatusValid {
		rec.LastUsed = m.now()
		if err := m.store.Save(reg); err != nil {
			return CheckResult{Record: rec, Status: status}, err
		}
	}
	return CheckResult{Record: rec, Status: status}, nil
}

// UpdatePackages re-probes the installed-package snapshot for every record
// matching path or project name. Fails when a matched environment is not
// currently Valid.
func (m *Manager) UpdatePackages(path, projectName string) (int, error) {
	if path == "" && projectName == "" {
		return 0, fmt.Errorf("either a path or a project name is required")
	}

	canonical := ""
	if path != "" {
		var err error
		canonical, err = CanonicalPath(path)
		if err != nil {
			return 0, fmt.Errorf("canonicalizing path: %w", err)
		}
	}

	reg, err := m.store.Load()
	if err != nil {
		return 0, err
	}

	updated := 0
	for key, rec := range reg.Environments {
		matched := (canonical != "" && key == canonical) ||
			(projectName != "" && rec.ProjectName == projectName)
		if !matched {
			continue
		}

		if status := m.verifier.Verify(rec.Path); status != StatusValid {
			return 0, fmt.Errorf("%w: %s is %s", ErrInvalidEnvironment, rec.Path, status)
		}

		packages, err := m.verifier.InstalledPackages(rec.Path)
		if err != nil {
			return 0, fmt.Errorf("probing packages for %s: %w", rec.Path, err)
		}
		rec.Packages = packages
		rec.LastUpdated = m.now()
		updated++
		log.Info(log.CatRegistry, "updated package snapshot", "path", rec.Path, "packages", len(packages))
	}
	if updated == 0 {
		return 0, ErrNotRegistered
	}

	if err := m.store.Save(reg); err != nil {
		return 0, err
	}
	return updated, nil
}

// Touch refreshes last_used for the record at path.
func (m *Manager) Touch(path string) error {
	canonical, err := CanonicalPath(path)
	if err != nil {
		return fmt.Errorf("canonicalizing path: %w", err)
	}

	reg, err := m.store.Load()
	if err != nil {
		return err
	}

	rec, ok := reg.Environments[canonical]
	if !ok {
		return ErrNotRegistered
	}
	rec.LastUsed = m.now()
	return m.store.Save(reg)
}

// find loads the registry and locates the first record matching path (exact
// canonical) or project name. A nil record with nil error means no match.
func (m *Manager) find(path, projectName string) (*Registry, *EnvironmentRecord, error) {
	reg, err := m.store.Load()
	if err != nil {
		return nil, nil, err
	}

	if path != "" {
		canonical, err := CanonicalPath(path)
		if err != nil {
			return nil, nil, fmt.Errorf("canonicalizing path: %w", err)
		}
		if rec, ok := reg.Environments[canonical]; ok {
			return reg, rec, nil
		}
		return reg, nil, nil
	}

	for _, rec := range reg.Records() {
		if rec.ProjectName == projectName {
			return reg, rec, nil
		}
	}
	return reg, nil, nil
}
