package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jamie-woolworths/mlops-labs/internal/config"
	"github.com/jamie-woolworths/mlops-labs/internal/ui"
	"github.com/jamie-woolworths/mlops-labs/internal/util/prerequisites"
)

// DoctorStatus represents the local environment diagnostic results.
type DoctorStatus struct {
	Tools       []ToolStatus `json:"tools"`
	Credentials bool         `json:"credentials"`
	ConfigFile  bool         `json:"configFile"`
	Ready       bool         `json:"ready"`
}

// ToolStatus represents a single client tool check.
type ToolStatus struct {
	Name     string `json:"name"`
	Found    bool   `json:"found"`
	Required bool   `json:"required"`
	Version  string `json:"version,omitempty"`
}

// adcRelPath is where gcloud stores application default credentials under
// the home directory.
const adcRelPath = ".config/gcloud/application_default_credentials.json"

// Factory function variables for doctor - can be replaced in tests.
var (
	// checkAllPrereqs checks required and optional client tools.
	checkAllPrereqs = prerequisites.CheckAll

	// userHomeDir returns the current user's home directory.
	userHomeDir = os.UserHomeDir
)

// Doctor checks the local environment without calling any cloud APIs.
//
// It verifies the required and optional client tools, looks for application
// default credentials and for the lab config file. The command fails when a
// required check fails, so it can gate scripted runs.
func Doctor(ctx context.Context, jsonOutput bool) error {
	status := collectDoctorStatus()

	if jsonOutput {
		return printDoctorJSON(status)
	}

	fmt.Print(ui.RenderChecks("mlopslab doctor", doctorChecks(status), isInteractive()))

	if !status.Ready {
		return fmt.Errorf("environment is not ready; fix the failed checks above")
	}
	return nil
}

// collectDoctorStatus gathers all diagnostic results.
func collectDoctorStatus() *DoctorStatus {
	status := &DoctorStatus{Ready: true}

	results := checkAllPrereqs()
	for _, r := range results.Results {
		status.Tools = append(status.Tools, ToolStatus{
			Name:     r.Tool.Name,
			Found:    r.Found,
			Required: r.Tool.Required,
			Version:  r.Version,
		})
		if r.Tool.Required && !r.Found {
			status.Ready = false
		}
	}

	status.Credentials = hasDefaultCredentials()
	if !status.Credentials {
		status.Ready = false
	}

	status.ConfigFile = fileExists(config.DefaultFile)

	return status
}

// hasDefaultCredentials reports whether application default credentials are
// available, either via GOOGLE_APPLICATION_CREDENTIALS or the well-known
// gcloud file.
func hasDefaultCredentials() bool {
	if path := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); path != "" {
		return fileExists(path)
	}
	home, err := userHomeDir()
	if err != nil {
		return false
	}
	return fileExists(filepath.Join(home, adcRelPath))
}

// doctorChecks converts the status into renderable check lines.
func doctorChecks(status *DoctorStatus) []ui.Check {
	checks := make([]ui.Check, 0, len(status.Tools)+2)

	for _, tool := range status.Tools {
		detail := tool.Version
		if !tool.Found && !tool.Required {
			detail = "optional, not found"
		}
		checks = append(checks, ui.Check{
			Name:     tool.Name,
			OK:       tool.Found,
			Required: tool.Required,
			Detail:   detail,
		})
	}

	credDetail := ""
	if !status.Credentials {
		credDetail = "run: gcloud auth application-default login"
	}
	checks = append(checks, ui.Check{
		Name:     "application default credentials",
		OK:       status.Credentials,
		Required: true,
		Detail:   credDetail,
	})

	configDetail := config.DefaultFile
	if !status.ConfigFile {
		configDetail = "optional, create one with: mlopslab init"
	}
	checks = append(checks, ui.Check{
		Name:   "lab config file",
		OK:     status.ConfigFile,
		Detail: configDetail,
	})

	return checks
}

// printDoctorJSON prints the status as indented JSON.
func printDoctorJSON(status *DoctorStatus) error {
	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	fmt.Println(string(data))

	if !status.Ready {
		return fmt.Errorf("environment is not ready")
	}
	return nil
}
