// Package wizard collects lab parameters interactively for the init command.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/charmbracelet/huh"

	"github.com/jamie-woolworths/mlops-labs/internal/config"
)

// projectIDRegex matches the Google Cloud project id format: 6-30 lowercase
// alphanumeric characters or hyphens, starting with a letter.
var projectIDRegex = regexp.MustCompile(`^[a-z][a-z0-9-]{4,28}[a-z0-9]$`)

// namespaceRegex matches a DNS-1123 label.
var namespaceRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// Run walks the operator through the lab parameters and returns them ready
// to be written to the lab config file. Optional fields left empty follow
// the usual defaulting when the file is loaded.
func Run(ctx context.Context) (*config.FileParams, error) {
	p := &config.FileParams{
		Region:    config.DefaultRegion,
		Zone:      config.DefaultZone,
		Namespace: config.DefaultNamespace,
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project ID").
				Description("Google Cloud project to provision the lab into").
				Placeholder("my-ml-project").
				Value(&p.ProjectID).
				Validate(validateProjectID),
			huh.NewInput().
				Title("SQL Password").
				Description("Password for the pipeline metadata database").
				EchoMode(huh.EchoModePassword).
				Value(&p.SQLPassword).
				Validate(notEmpty("sql password")),
		).Title("Project"),
		huh.NewGroup(
			huh.NewInput().
				Title("Name Prefix (Optional)").
				Description("Prefix for lab resources. Leave empty to use the project id.").
				Value(&p.NamePrefix).
				Validate(validatePrefix),
			huh.NewInput().
				Title("Region").
				Value(&p.Region).
				Validate(notEmpty("region")),
			huh.NewInput().
				Title("Zone").
				Value(&p.Zone).
				Validate(notEmpty("zone")),
			huh.NewInput().
				Title("Namespace").
				Description("Cluster namespace the pipeline platform is installed into").
				Value(&p.Namespace).
				Validate(validateNamespace),
		).Title("Environment"),
	).RunWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("wizard aborted: %w", err)
	}

	return p, nil
}

func validateProjectID(s string) error {
	if !projectIDRegex.MatchString(s) {
		return errors.New("6-30 lowercase letters, digits or hyphens, starting with a letter")
	}
	return nil
}

func validatePrefix(s string) error {
	if s == "" {
		return nil
	}
	if len(s) > 24 {
		return errors.New("prefix must be at most 24 characters")
	}
	if !namespaceRegex.MatchString(s) {
		return errors.New("lowercase letters, digits or hyphens only")
	}
	return nil
}

func validateNamespace(s string) error {
	if len(s) == 0 || len(s) > 63 {
		return errors.New("namespace must be 1-63 characters")
	}
	if !namespaceRegex.MatchString(s) {
		return errors.New("must be a valid DNS label")
	}
	return nil
}

func notEmpty(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s must not be empty", field)
		}
		return nil
	}
}
