package venv

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/agentic-framework/agentic-core/internal/log"
)

// Status classifies a path's relationship to the registry and filesystem.
type Status int

const (
	// StatusValid means the interpreter and pip binaries are present and the
	// interpreter answered a version query within the probe timeout.
	StatusValid Status = iota
	// StatusInvalid means the path exists but is missing expected binaries or
	// its interpreter failed to execute.
	StatusInvalid
	// StatusMissing means the path does not exist as a directory.
	StatusMissing
	// StatusNotRegistered means no registry record matched the lookup.
	StatusNotRegistered
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusInvalid:
		return "invalid"
	case StatusMissing:
		return "missing"
	case StatusNotRegistered:
		return "not registered"
	default:
		return "unknown"
	}
}

// PythonBin returns the conventional interpreter location inside an environment.
func PythonBin(envPath string) string {
	return filepath.Join(envPath, "bin", "python")
}

// PipBin returns the conventional package-manager location inside an environment.
func PipBin(envPath string) string {
	return filepath.Join(envPath, "bin", "pip")
}

// Verifier classifies filesystem paths without mutating anything. Each call
// inspects live filesystem state; results are never cached.
type Verifier struct {
	prober  Prober
	timeout time.Duration
}

// NewVerifier creates a verifier using the given prober, bounding each
// interpreter query by timeout.
func NewVerifier(prober Prober, timeout time.Duration) *Verifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Verifier{prober: prober, timeout: timeout}
}

// Verify classifies path as Valid, Invalid, or Missing. Probe execution
// failures, including timeout, collapse to Invalid; Verify never fails.
func (v *Verifier) Verify(path string) Status {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return StatusMissing
	}

	if !isRegularFile(PythonBin(path)) {
		log.Warn(log.CatVerify, "python binary not found", "path", PythonBin(path))
		return StatusInvalid
	}
	if !isRegularFile(PipBin(path)) {
		log.Warn(log.CatVerify, "pip binary not found", "path", PipBin(path))
		return StatusInvalid
	}

	ctx, cancel := context.WithTimeout(context.Background(), v.timeout)
	defer cancel()

	version, err := v.prober.Version(ctx, PythonBin(path))
	if err != nil {
		log.Warn(log.CatVerify, "python binary exists but failed to execute", "path", path, "error", err)
		return StatusInvalid
	}

	log.Debug(log.CatVerify, "environment verified", "path", path, "python", version)
	return StatusValid
}

// PythonVersion probes the interpreter version for the environment at path.
// Probe failure yields "unknown" rather than an error.
func (v *Verifier) PythonVersion(path string) string {
	ctx, cancel := context.WithTimeout(context.Background(), v.timeout)
	defer cancel()

	version, err := v.prober.Version(ctx, PythonBin(path))
	if err != nil || version == "" {
		return "unknown"
	}
	return version
}

// InstalledPackages probes the installed-package snapshot for the environment
// at path. The pip listing gets a longer leash than the version query since
// it does real work.
func (v *Verifier) InstalledPackages(path string) ([]PackageInfo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*v.timeout)
	defer cancel()

	return v.prober.Packages(ctx, PythonBin(path))
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
