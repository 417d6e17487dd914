// Package testutil provides filesystem fixtures for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFakeEnv lays out the conventional virtual-environment structure at
// dir: bin/python, bin/pip, and a pyvenv.cfg marker. The binaries are inert
// placeholder files; tests pair them with a scripted prober instead of
// executing them.
func WriteFakeEnv(t *testing.T, dir string) {
	t.Helper()

	binDir := filepath.Join(dir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("creating bin dir: %v", err)
	}
	for _, name := range []string{"python", "pip"} {
		if err := os.WriteFile(filepath.Join(binDir, name), []byte("#!/bin/sh\n"), 0o755); err != nil { //nolint:gosec // test fixture
			t.Fatalf("writing fake %s: %v", name, err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "pyvenv.cfg"), []byte("home = /usr/bin\n"), 0o644); err != nil {
		t.Fatalf("writing pyvenv.cfg: %v", err)
	}
}

// WriteBrokenEnv lays out a directory that looks like an environment but is
// missing the pip binary, which verification classifies as invalid.
func WriteBrokenEnv(t *testing.T, dir string) {
	t.Helper()

	binDir := filepath.Join(dir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("creating bin dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(binDir, "python"), []byte("#!/bin/sh\n"), 0o755); err != nil { //nolint:gosec // test fixture
		t.Fatalf("writing fake python: %v", err)
	}
}
