package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUp(t *testing.T) {
	cmd := Up()

	require.NotNil(t, cmd)
	assert.Equal(t, "up", cmd.Name())
	assert.Contains(t, cmd.Use, "PROJECT_ID SQL_PASSWORD")
	assert.NotNil(t, cmd.RunE)
}

func TestUp_Flags(t *testing.T) {
	cmd := Up()

	configFlag := cmd.Flags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)
	assert.Equal(t, "", configFlag.DefValue)

	infraFlag := cmd.Flags().Lookup("infra-dir")
	require.NotNil(t, infraFlag)
	assert.Equal(t, "infra", infraFlag.DefValue)

	buildFlag := cmd.Flags().Lookup("build-dir")
	require.NotNil(t, buildFlag)
	assert.Equal(t, "notebook", buildFlag.DefValue)
}

func TestUpArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		config  string
		wantErr bool
	}{
		{name: "no args", args: nil, wantErr: true},
		{name: "one arg", args: []string{"proj1"}, wantErr: true},
		{name: "two args", args: []string{"proj1", "pw1"}},
		{name: "all six args", args: []string{"proj1", "pw1", "team-a", "us-east1", "us-east1-b", "mlops"}},
		{name: "seven args", args: []string{"proj1", "pw1", "a", "b", "c", "d", "e"}, wantErr: true},
		{name: "config flag with no args", config: "lab.yaml"},
		{name: "config flag rejects positionals", args: []string{"proj1"}, config: "lab.yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := Up()
			if tt.config != "" {
				require.NoError(t, cmd.Flags().Set("config", tt.config))
			}

			err := upArgs(cmd, tt.args)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUp_TooFewArgsPrintsUsage(t *testing.T) {
	root := Root()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"up", "proj-only"})

	err := root.Execute()

	require.Error(t, err, "too few arguments must fail the command")
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "mlopslab up PROJECT_ID SQL_PASSWORD")
}
