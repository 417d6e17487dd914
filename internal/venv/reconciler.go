package venv

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/agentic-framework/agentic-core/internal/log"
)

// Confirmer answers yes/no questions during reconciliation. The interactive
// prompt lives in the cmd layer; tests and --yes runs inject headless
// implementations so the reconciliation algorithm itself stays prompt-free.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmAll accepts every proposal. Used by non-interactive repair.
type ConfirmAll struct{}

// Confirm always returns true.
func (ConfirmAll) Confirm(string) bool { return true }

// DenyAll rejects every proposal.
type DenyAll struct{}

// Confirm always returns false.
func (DenyAll) Confirm(string) bool { return false }

// Reconciler keeps the registry consistent with the filesystem in both
// directions: Cleanup drops records whose directory vanished, Repair adopts
// environments the registry does not know about.
type Reconciler struct {
	store    *Store
	verifier *Verifier
	manager  *Manager
	confirm  Confirmer
}

// NewReconciler creates a reconciler. confirm gates each Repair proposal.
func NewReconciler(store *Store, verifier *Verifier, manager *Manager, confirm Confirmer) *Reconciler {
	return &Reconciler{store: store, verifier: verifier, manager: manager, confirm: confirm}
}

// Cleanup removes every tracked record whose path no longer exists and
// returns the number removed. Idempotent: an unchanged filesystem makes the
// second run remove zero. Invalid-but-present environments stay tracked; the
// operator must remove or fix those manually.
func (r *Reconciler) Cleanup() (int, error) {
	reg, err := r.store.Load()
	if err != nil {
		return 0, err
	}

	removed := 0
	for key, rec := range reg.Environments {
		if r.verifier.Verify(rec.Path) != StatusMissing {
			continue
		}
		delete(reg.Environments, key)
		removed++
		log.Info(log.CatReconcile, "removed non-existent environment", "path", rec.Path, "project", rec.ProjectName)
	}

	if removed == 0 {
		return 0, nil
	}
	if err := r.store.Save(reg); err != nil {
		return 0, err
	}
	return removed, nil
}

// Discovered describes an untracked environment found by a repair scan.
type Discovered struct {
	Path        string
	ProjectName string
}

// Repair scans each root for untracked virtual environments, verifies each
// candidate, and registers the Valid ones accepted by the confirmer. Returns
// the number added. Idempotent with respect to filesystem state: adopted
// environments are skipped as already tracked on the next run.
func (r *Reconciler) Repair(roots []string) (int, error) {
	reg, err := r.store.Load()
	if err != nil {
		return 0, err
	}

	tracked := make(map[string]bool, len(reg.Environments))
	for key := range reg.Environments {
		tracked[key] = true
	}

	added := 0
	for _, root := range roots {
		candidates, err := r.scan(root, tracked)
		if err != nil {
			log.Warn(log.CatReconcile, "scan failed", "root", root, "error", err)
			continue
		}

		for _, c := range candidates {
			if r.verifier.Verify(c.Path) != StatusValid {
				log.Debug(log.CatReconcile, "skipping invalid candidate", "path", c.Path)
				continue
			}
			prompt := fmt.Sprintf("Add %s (%s) to registry?", c.Path, c.ProjectName)
			if !r.confirm.Confirm(prompt) {
				log.Info(log.CatReconcile, "candidate rejected by operator", "path", c.Path)
				continue
			}

			_, err := r.manager.Add(AddOptions{
				Path:        c.Path,
				ProjectName: c.ProjectName,
				Description: fmt.Sprintf("Virtual environment for %s (auto-discovered)", c.ProjectName),
				Verify:      false,
			})
			if err != nil {
				log.ErrorErr(log.CatReconcile, "adding discovered environment failed", err, "path", c.Path)
				continue
			}
			tracked[c.Path] = true
			added++
			log.Info(log.CatReconcile, "adopted environment", "path", c.Path, "project", c.ProjectName)
		}
	}
	return added, nil
}

// scan walks root looking for directories with the conventional environment
// marker layout: a directory named .venv, or any directory carrying a
// pyvenv.cfg. Matched directories are not descended into. Already-tracked
// paths are skipped.
func (r *Reconciler) scan(root string, tracked map[string]bool) ([]Discovered, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("scan root is not a directory: %s", root)
	}

	var found []Discovered
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtree; keep scanning the rest.
			return fs.SkipDir
		}
		if !d.IsDir() {
			return nil
		}
		if !isEnvironmentMarker(path, d.Name()) {
			return nil
		}

		canonical, err := CanonicalPath(path)
		if err != nil {
			return fs.SkipDir
		}
		if !tracked[canonical] {
			found = append(found, Discovered{
				Path:        canonical,
				ProjectName: projectNameFor(canonical),
			})
		}
		// Never descend into an environment.
		return fs.SkipDir
	})
	if walkErr != nil {
		return found, walkErr
	}
	return found, nil
}

func isEnvironmentMarker(path, name string) bool {
	if name == ".venv" {
		return true
	}
	info, err := os.Stat(filepath.Join(path, "pyvenv.cfg"))
	return err == nil && info.Mode().IsRegular()
}

// projectNameFor derives a project name from the environment location: the
// parent directory for a ".venv" child, otherwise the directory itself.
func projectNameFor(envPath string) string {
	if filepath.Base(envPath) == ".venv" {
		return filepath.Base(filepath.Dir(envPath))
	}
	return filepath.Base(envPath)
}
