package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/jamie-woolworths/mlops-labs/internal/config"
	"github.com/jamie-woolworths/mlops-labs/internal/config/wizard"
	"github.com/jamie-woolworths/mlops-labs/internal/ui"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive parameter wizard.
	runWizard = wizard.Run

	// writeConfigFile writes the parameters to a file.
	writeConfigFile = config.WriteFile

	// isInteractive reports whether stdout is a terminal.
	isInteractive = ui.IsInteractive
)

// Init runs the parameter wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if !isInteractive() {
		return fmt.Errorf("init needs an interactive terminal; pass parameters to 'mlopslab up' directly instead")
	}

	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	fp, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	if err := writeConfigFile(outputPath, fp); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, fp)

	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("mlopslab - ML pipeline labs on Google Cloud")
	fmt.Println("===========================================")
	fmt.Println()
	fmt.Println("This wizard collects the lab parameters and saves them to a file.")
	fmt.Println("Only the project id and the Cloud SQL password are required;")
	fmt.Println("everything else has sensible defaults.")
	fmt.Println()
}

// printInitSuccess prints the saved file path and the effective parameters.
func printInitSuccess(outputPath string, fp *config.FileParams) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	params, err := fp.Resolve()
	if err != nil {
		return
	}

	fmt.Println("Lab Summary")
	fmt.Println("-----------")
	fmt.Printf("  Project:   %s\n", params.ProjectID)
	fmt.Printf("  Prefix:    %s\n", params.NamePrefix)
	fmt.Printf("  Region:    %s\n", params.Region)
	fmt.Printf("  Zone:      %s\n", params.Zone)
	fmt.Printf("  Namespace: %s\n", params.Namespace)
	fmt.Printf("  Notebook:  %s\n", params.InstanceName())
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  mlopslab up --config %s\n", outputPath)
}
