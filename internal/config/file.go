package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the lab config file written by the init wizard.
const DefaultFile = "mlopslab.yaml"

// FileParams mirrors RunParameters in the lab config file.
type FileParams struct {
	ProjectID   string `yaml:"project_id"`
	SQLPassword string `yaml:"sql_password"`
	NamePrefix  string `yaml:"name_prefix,omitempty"`
	Region      string `yaml:"region,omitempty"`
	Zone        string `yaml:"zone,omitempty"`
	Namespace   string `yaml:"namespace,omitempty"`
}

// Resolve applies the defaulting policy to file-sourced parameters.
func (f *FileParams) Resolve() (*RunParameters, error) {
	if f.ProjectID == "" {
		return nil, errors.New("config file must set project_id")
	}
	if f.SQLPassword == "" {
		return nil, errors.New("config file must set sql_password")
	}

	p := &RunParameters{
		ProjectID:   f.ProjectID,
		SQLPassword: f.SQLPassword,
		NamePrefix:  f.NamePrefix,
		Region:      f.Region,
		Zone:        f.Zone,
		Namespace:   f.Namespace,
	}
	p.applyDefaults()
	return p, nil
}

// LoadFile reads and resolves run parameters from a YAML lab config file.
func LoadFile(path string) (*RunParameters, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fp FileParams
	if err := yaml.Unmarshal(data, &fp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	params, err := fp.Resolve()
	if err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return params, nil
}

// WriteFile persists file parameters. The file carries the SQL password,
// so it is written owner-readable only.
func WriteFile(path string, fp *FileParams) error {
	data, err := yaml.Marshal(fp)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
