package venv

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// fakeProber returns scripted results instead of executing an interpreter.
type fakeProber struct {
	version    string
	versionErr error
	packages   []PackageInfo
	packageErr error
}

func (f *fakeProber) Version(ctx context.Context, pythonBin string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.versionErr != nil {
		return "", f.versionErr
	}
	return f.version, nil
}

func (f *fakeProber) Packages(ctx context.Context, pythonBin string) ([]PackageInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.packageErr != nil {
		return nil, f.packageErr
	}
	return f.packages, nil
}

// hangingProber blocks until the context expires, simulating a wedged
// interpreter that the probe timeout must cut off.
type hangingProber struct{}

func (hangingProber) Version(ctx context.Context, pythonBin string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (hangingProber) Packages(ctx context.Context, pythonBin string) ([]PackageInfo, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// scriptedConfirmer answers a fixed sequence, then denies.
type scriptedConfirmer struct {
	answers []bool
	calls   int
}

func (s *scriptedConfirmer) Confirm(string) bool {
	if s.calls >= len(s.answers) {
		s.calls++
		return false
	}
	answer := s.answers[s.calls]
	s.calls++
	return answer
}

var errProbeFailed = errors.New("probe failed")

// newTestStore returns a store rooted in a temp dir with a deterministic
// clock that advances one second per call, keeping backup names unique.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s := NewStore(dir+"/venv_registry.json", dir+"/backups", 10)
	installTestClock(s)
	return s
}

func installTestClock(s *Store) {
	clk := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clk = clk.Add(time.Second)
		return clk
	}
}

// newTestVerifier pairs a verifier with a prober that reports a healthy
// interpreter.
func newTestVerifier() *Verifier {
	return NewVerifier(&fakeProber{version: "3.12.1"}, time.Second)
}
