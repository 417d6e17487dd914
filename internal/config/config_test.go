package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.NotEmpty(t, cfg.RegistryPath)
	require.NotEmpty(t, cfg.BackupDir)
	require.Equal(t, 10, cfg.BackupRetention)
	require.Equal(t, 10*time.Second, cfg.ProbeTimeout)
	require.Len(t, cfg.ScanRoots, 1)
	require.NotEmpty(t, cfg.FeedbackPath)
	require.NotEmpty(t, cfg.LogFile)
	require.False(t, cfg.Debug)

	require.NoError(t, Validate(cfg))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults pass",
			mutate: func(*Config) {},
		},
		{
			name:    "missing registry path",
			mutate:  func(c *Config) { c.RegistryPath = "" },
			wantErr: "registry_path",
		},
		{
			name:    "missing backup dir",
			mutate:  func(c *Config) { c.BackupDir = "" },
			wantErr: "backup_dir",
		},
		{
			name:    "zero retention",
			mutate:  func(c *Config) { c.BackupRetention = 0 },
			wantErr: "backup_retention",
		},
		{
			name:    "negative probe timeout",
			mutate:  func(c *Config) { c.ProbeTimeout = -time.Second },
			wantErr: "probe_timeout",
		},
		{
			name:    "zero probe timeout",
			mutate:  func(c *Config) { c.ProbeTimeout = 0 },
			wantErr: "probe_timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
