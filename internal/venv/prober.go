package venv

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/agentic-framework/agentic-core/internal/log"
)

// versionQuery prints the interpreter version as "major.minor.micro".
const versionQuery = `import sys; print(".".join(map(str, sys.version_info[:3])))`

// Prober queries a Python interpreter binary. The context bounds the
// subprocess; callers pass a deadline and treat expiry as probe failure.
type Prober interface {
	// Version returns the interpreter's semantic version string.
	Version(ctx context.Context, pythonBin string) (string, error)

	// Packages returns the installed-package snapshot reported by pip.
	Packages(ctx context.Context, pythonBin string) ([]PackageInfo, error)
}

// Compile-time check that ExecProber implements Prober.
var _ Prober = (*ExecProber)(nil)

// ExecProber runs the real interpreter binary.
type ExecProber struct{}

// Version executes 'python -c <version query>' and returns the trimmed output.
func (ExecProber) Version(ctx context.Context, pythonBin string) (string, error) {
	start := time.Now()
	defer func() {
		log.Debug(log.CatPython, "version probe completed", "python", pythonBin, "duration", time.Since(start))
	}()

	//nolint:gosec // G204: pythonBin is a path inside a registered environment
	cmd := exec.CommandContext(ctx, pythonBin, "-c", versionQuery)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			err = fmt.Errorf("version probe failed: %s", strings.TrimSpace(stderr.String()))
		} else {
			err = fmt.Errorf("version probe failed: %w", err)
		}
		log.Warn(log.CatPython, "version probe failed", "python", pythonBin, "error", err)
		return "", err
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Packages executes 'python -m pip list --format=json' and parses the output.
func (ExecProber) Packages(ctx context.Context, pythonBin string) ([]PackageInfo, error) {
	start := time.Now()
	defer func() {
		log.Debug(log.CatPython, "package probe completed", "python", pythonBin, "duration", time.Since(start))
	}()

	//nolint:gosec // G204: pythonBin is a path inside a registered environment
	cmd := exec.CommandContext(ctx, pythonBin, "-m", "pip", "list", "--format=json")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			err = fmt.Errorf("package probe failed: %s", strings.TrimSpace(stderr.String()))
		} else {
			err = fmt.Errorf("package probe failed: %w", err)
		}
		log.Warn(log.CatPython, "package probe failed", "python", pythonBin, "error", err)
		return nil, err
	}

	var packages []PackageInfo
	if err := json.Unmarshal(stdout.Bytes(), &packages); err != nil {
		return nil, fmt.Errorf("parsing pip list output: %w", err)
	}
	return packages, nil
}
