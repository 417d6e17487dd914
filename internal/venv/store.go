package venv

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/agentic-framework/agentic-core/internal/log"
)

const (
	backupPrefix = "venv_registry_"
	backupSuffix = ".json"
	// backupTimeFormat sorts lexicographically in chronological order.
	backupTimeFormat = "20060102_150405"
)

// Store persists exactly one Registry with atomic writes and rotated backups.
//
// There is no cross-process lock: two CLI invocations saving concurrently are
// last-writer-wins over the whole file. Atomicity here protects readers from
// half-written files, not writers from each other.
type Store struct {
	path      string
	backupDir string
	retention int
	now       func() time.Time
}

// NewStore creates a store for the registry file at path, keeping up to
// retention backups in backupDir.
func NewStore(path, backupDir string, retention int) *Store {
	if retention < 1 {
		retention = 1
	}
	return &Store{
		path:      path,
		backupDir: backupDir,
		retention: retention,
		now:       time.Now,
	}
}

// Path returns the registry file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the registry file. A missing file becomes a fresh, persisted
// registry; an unparsable file is restored from the newest parsable backup,
// or recreated empty with a metadata note when no backup can be recovered.
// Load only fails when the resulting registry cannot be persisted.
func (s *Store) Load() (*Registry, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		log.Info(log.CatRegistry, "registry file not found, creating new registry", "path", s.path)
		reg := NewRegistry()
		if saveErr := s.Save(reg); saveErr != nil {
			return reg, saveErr
		}
		return reg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading registry: %w", err)
	}

	reg := NewRegistry()
	if err := json.Unmarshal(data, reg); err == nil {
		log.Debug(log.CatRegistry, "registry loaded", "environments", len(reg.Environments))
		return reg, nil
	}

	log.Error(log.CatRegistry, "registry file is corrupted or not valid JSON", "path", s.path)
	if restored := s.restoreFromBackup(); restored != nil {
		// Re-save immediately so recovery is durable, not repeated per run.
		if saveErr := s.Save(restored); saveErr != nil {
			return restored, saveErr
		}
		return restored, nil
	}

	log.Info(log.CatRegistry, "creating new registry due to corruption")
	reg = NewRegistry()
	reg.Metadata.Note = "This registry was recreated due to corruption"
	if saveErr := s.Save(reg); saveErr != nil {
		return reg, saveErr
	}
	return reg, nil
}

// restoreFromBackup returns the newest parsable backup, or nil.
func (s *Store) restoreFromBackup() *Registry {
	backups, err := s.listBackups()
	if err != nil {
		log.ErrorErr(log.CatRegistry, "listing backups failed", err)
		return nil
	}

	// Newest first.
	for i := len(backups) - 1; i >= 0; i-- {
		data, err := os.ReadFile(backups[i])
		if err != nil {
			log.Warn(log.CatRegistry, "backup unreadable", "path", backups[i])
			continue
		}
		reg := NewRegistry()
		if err := json.Unmarshal(data, reg); err != nil {
			log.Warn(log.CatRegistry, "backup unparsable", "path", backups[i])
			continue
		}
		log.Info(log.CatRegistry, "registry restored from backup", "path", backups[i])
		return reg
	}
	return nil
}

// Save writes the registry atomically. The previous file, if any, is copied
// into the backup directory first; rotation runs on every save, even when
// only a timestamp changed. On failure the on-disk registry file is left
// untouched and the in-memory mutation is not committed.
func (s *Store) Save(reg *Registry) error {
	if err := s.rotateBackups(); err != nil {
		return err
	}

	reg.LastUpdated = s.now()

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling registry: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating registry directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".venv_registry.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	log.Debug(log.CatRegistry, "registry saved", "environments", len(reg.Environments))
	return nil
}

// rotateBackups copies the current registry file into the backup directory
// and prunes all but the most recent backups. A missing registry file means
// there is nothing to back up yet.
func (s *Store) rotateBackups() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading registry for backup: %w", err)
	}

	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return fmt.Errorf("creating backup directory: %w", err)
	}

	name := backupPrefix + s.now().Format(backupTimeFormat) + backupSuffix
	backupPath := filepath.Join(s.backupDir, name)
	if err := os.WriteFile(backupPath, data, 0o644); err != nil { //nolint:gosec // G306: registry holds no secrets
		return fmt.Errorf("writing backup: %w", err)
	}
	log.Debug(log.CatRegistry, "created registry backup", "path", backupPath)

	backups, err := s.listBackups()
	if err != nil {
		return fmt.Errorf("listing backups: %w", err)
	}
	if len(backups) > s.retention {
		for _, old := range backups[:len(backups)-s.retention] {
			if err := os.Remove(old); err != nil {
				log.Warn(log.CatRegistry, "removing old backup failed", "path", old, "error", err)
				continue
			}
			log.Debug(log.CatRegistry, "removed old backup", "path", old)
		}
	}
	return nil
}

// listBackups returns backup file paths sorted oldest first.
func (s *Store) listBackups() ([]string, error) {
	entries, err := os.ReadDir(s.backupDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var backups []string
	for _, e := range entries {
		name := e.Name()
		if e.Type().IsRegular() &&
			len(name) > len(backupPrefix)+len(backupSuffix) &&
			name[:len(backupPrefix)] == backupPrefix &&
			name[len(name)-len(backupSuffix):] == backupSuffix {
			backups = append(backups, filepath.Join(s.backupDir, name))
		}
	}
	sort.Strings(backups)
	return backups, nil
}
