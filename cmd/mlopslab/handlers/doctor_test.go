package handlers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamie-woolworths/mlops-labs/internal/util/prerequisites"
)

func stubToolResults(found bool) func() *prerequisites.CheckResults {
	return func() *prerequisites.CheckResults {
		terraform := prerequisites.Tool{Name: "terraform", Required: true}
		gcloud := prerequisites.Tool{Name: "gcloud"}
		results := &prerequisites.CheckResults{
			Results: []prerequisites.CheckResult{
				{Tool: terraform, Found: found, Version: "Terraform v1.9.0"},
				{Tool: gcloud, Found: false},
			},
			Missing: []prerequisites.Tool{gcloud},
		}
		if !found {
			results.Missing = append(results.Missing, terraform)
		}
		return results
	}
}

func TestCollectDoctorStatus_Ready(t *testing.T) {
	saveAndRestoreFactories(t)

	checkAllPrereqs = stubToolResults(true)
	fileExists = func(_ string) bool { return true }
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/tmp/creds.json")

	status := collectDoctorStatus()

	require.Len(t, status.Tools, 2)
	assert.Equal(t, "terraform", status.Tools[0].Name)
	assert.True(t, status.Tools[0].Found)
	assert.True(t, status.Tools[0].Required)
	assert.Equal(t, "gcloud", status.Tools[1].Name)
	assert.False(t, status.Tools[1].Found)
	assert.True(t, status.Credentials)
	assert.True(t, status.ConfigFile)
	assert.True(t, status.Ready, "missing optional tools must not block readiness")
}

func TestCollectDoctorStatus_MissingRequiredTool(t *testing.T) {
	saveAndRestoreFactories(t)

	checkAllPrereqs = stubToolResults(false)
	fileExists = func(_ string) bool { return true }
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/tmp/creds.json")

	status := collectDoctorStatus()

	assert.False(t, status.Ready)
}

func TestCollectDoctorStatus_MissingCredentials(t *testing.T) {
	saveAndRestoreFactories(t)

	checkAllPrereqs = stubToolResults(true)
	fileExists = func(_ string) bool { return false }
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	userHomeDir = func() (string, error) { return "", errors.New("no home") }

	status := collectDoctorStatus()

	assert.False(t, status.Credentials)
	assert.False(t, status.Ready)
}

func TestHasDefaultCredentials(t *testing.T) {
	saveAndRestoreFactories(t)

	home := t.TempDir()
	userHomeDir = func() (string, error) { return home, nil }
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	assert.False(t, hasDefaultCredentials(), "no env var and no well-known file")

	adcPath := filepath.Join(home, adcRelPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(adcPath), 0o755))
	require.NoError(t, os.WriteFile(adcPath, []byte("{}"), 0o600))
	assert.True(t, hasDefaultCredentials(), "well-known file exists")

	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", filepath.Join(home, "missing.json"))
	assert.False(t, hasDefaultCredentials(), "env var takes precedence over the well-known file")

	explicit := filepath.Join(home, "sa.json")
	require.NoError(t, os.WriteFile(explicit, []byte("{}"), 0o600))
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", explicit)
	assert.True(t, hasDefaultCredentials())
}

func TestDoctorChecks(t *testing.T) {
	t.Parallel()

	status := &DoctorStatus{
		Tools: []ToolStatus{
			{Name: "terraform", Found: true, Required: true, Version: "Terraform v1.9.0"},
			{Name: "gcloud", Found: false},
		},
		Credentials: false,
		ConfigFile:  false,
	}

	checks := doctorChecks(status)

	require.Len(t, checks, 4)
	assert.Equal(t, "terraform", checks[0].Name)
	assert.True(t, checks[0].OK)
	assert.Equal(t, "Terraform v1.9.0", checks[0].Detail)
	assert.Equal(t, "optional, not found", checks[1].Detail)
	assert.Equal(t, "application default credentials", checks[2].Name)
	assert.False(t, checks[2].OK)
	assert.Contains(t, checks[2].Detail, "gcloud auth application-default login")
	assert.Contains(t, checks[3].Detail, "mlopslab init")
}

func TestDoctor_NotReadyFails(t *testing.T) {
	saveAndRestoreFactories(t)

	checkAllPrereqs = stubToolResults(false)
	fileExists = func(_ string) bool { return false }
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	userHomeDir = func() (string, error) { return "", errors.New("no home") }
	isInteractive = func() bool { return false }

	err := Doctor(context.Background(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not ready")

	err = Doctor(context.Background(), true)
	require.Error(t, err)
}

func TestDoctor_ReadySucceeds(t *testing.T) {
	saveAndRestoreFactories(t)

	checkAllPrereqs = stubToolResults(true)
	fileExists = func(_ string) bool { return true }
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/tmp/creds.json")
	isInteractive = func() bool { return false }

	require.NoError(t, Doctor(context.Background(), false))
	require.NoError(t, Doctor(context.Background(), true))
}
