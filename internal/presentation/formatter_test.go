package presentation

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agentic-framework/agentic-core/internal/feedback"
	"github.com/agentic-framework/agentic-core/internal/venv"
)

func sampleRecord() *venv.EnvironmentRecord {
	created := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	return &venv.EnvironmentRecord{
		Path:          "/home/dev/projects/app/.venv",
		ProjectName:   "app",
		PythonVersion: "3.12.1",
		Description:   "Virtual environment for app",
		CreatedAt:     created,
		LastUsed:      created.Add(48 * time.Hour),
		LastUpdated:   created.Add(48 * time.Hour),
	}
}

func TestFormatEnvironments_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewFormatter(&buf).FormatEnvironments(nil, false, false)
	require.Contains(t, buf.String(), "No virtual environments registered")
}

func TestFormatEnvironments_Basic(t *testing.T) {
	var buf bytes.Buffer
	entries := []venv.ListEntry{{Record: sampleRecord(), Status: venv.StatusValid}}

	NewFormatter(&buf).FormatEnvironments(entries, false, false)

	out := buf.String()
	require.Contains(t, out, "Registered Virtual Environments (1):")
	require.Contains(t, out, "1. ")
	require.Contains(t, out, "app")
	require.Contains(t, out, "Path: /home/dev/projects/app/.venv")
	require.Contains(t, out, "Python: 3.12.1")
	require.NotContains(t, out, "Description:", "non-verbose output omits details")
}

func TestFormatEnvironments_Verbose(t *testing.T) {
	var buf bytes.Buffer
	rec := sampleRecord()
	rec.Packages = []venv.PackageInfo{{Name: "requests", Version: "2.32.0"}}
	entries := []venv.ListEntry{{Record: rec, Status: venv.StatusValid}}

	NewFormatter(&buf).FormatEnvironments(entries, true, true)

	out := buf.String()
	require.Contains(t, out, "Description: Virtual environment for app")
	require.Contains(t, out, "Created: 2025-05-01 09:00:00")
	require.Contains(t, out, "Last Used: 2025-05-03 09:00:00")
	require.Contains(t, out, "- requests (2.32.0)")
	require.NotContains(t, out, "more")
}

func TestFormatEnvironments_PackageListTruncated(t *testing.T) {
	var buf bytes.Buffer
	rec := sampleRecord()
	for i := 0; i < 14; i++ {
		rec.Packages = append(rec.Packages, venv.PackageInfo{
			Name:    fmt.Sprintf("pkg%02d", i),
			Version: "1.0.0",
		})
	}
	entries := []venv.ListEntry{{Record: rec, Status: venv.StatusValid}}

	NewFormatter(&buf).FormatEnvironments(entries, true, true)

	out := buf.String()
	require.Contains(t, out, "pkg09")
	require.NotContains(t, out, "pkg10")
	require.Contains(t, out, "... and 4 more")
}

func TestFormatCheck(t *testing.T) {
	tests := []struct {
		name   string
		result venv.CheckResult
		want   string
	}{
		{
			name:   "not registered",
			result: venv.CheckResult{Status: venv.StatusNotRegistered},
			want:   "not found in registry",
		},
		{
			name:   "valid",
			result: venv.CheckResult{Record: sampleRecord(), Status: venv.StatusValid},
			want:   "Valid",
		},
		{
			name:   "invalid",
			result: venv.CheckResult{Record: sampleRecord(), Status: venv.StatusInvalid},
			want:   "Invalid or corrupted",
		},
		{
			name:   "missing",
			result: venv.CheckResult{Record: sampleRecord(), Status: venv.StatusMissing},
			want:   "Directory does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewFormatter(&buf).FormatCheck(tt.result)
			require.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestFormatFeedbackItems(t *testing.T) {
	var buf bytes.Buffer
	items := []*feedback.Item{
		{
			ID:       "0123456789abcdef",
			Type:     feedback.TypeIssue,
			Priority: feedback.PriorityHigh,
			Title:    "list is slow",
			Status:   feedback.StatusNew,
		},
	}

	NewFormatter(&buf).FormatFeedbackItems(items)

	out := buf.String()
	require.Contains(t, out, "01234567")
	require.NotContains(t, out, "0123456789abcdef", "listing shows the short id")
	require.Contains(t, out, "[issue/high] list is slow (new)")
}

func TestFormatFeedbackItems_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewFormatter(&buf).FormatFeedbackItems(nil)
	require.Contains(t, buf.String(), "No feedback items")
}

func TestFormatFeedbackItem(t *testing.T) {
	var buf bytes.Buffer
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	item := &feedback.Item{
		ID:          "0123456789abcdef",
		Type:        feedback.TypeQuestion,
		Priority:    feedback.PriorityLow,
		Status:      feedback.StatusResolved,
		Title:       "backups",
		Description: "how many are kept",
		CreatedAt:   created,
		UpdatedAt:   created.Add(time.Hour),
		Comments: []feedback.Comment{
			{Author: "me", Text: "ten", CreatedAt: created.Add(time.Hour)},
		},
	}

	NewFormatter(&buf).FormatFeedbackItem(item)

	out := buf.String()
	require.Contains(t, out, "ID:          0123456789abcdef")
	require.Contains(t, out, "Title:       backups")
	require.Contains(t, out, "Comments:")
	require.Contains(t, out, "me: ten")
}

func TestStatusGlyph(t *testing.T) {
	require.Contains(t, StatusGlyph(venv.StatusValid), "✓")
	require.Contains(t, StatusGlyph(venv.StatusInvalid), "!")
	require.Contains(t, StatusGlyph(venv.StatusMissing), "✗")
}
