package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-b", "shares", "-a", ":8080"},
			allowedFlags: []string{"-b"},
			want:         []string{"-b", "shares"},
		},
		{
			name:         "equals form",
			args:         []string{"-b=shares", "-a", ":8080"},
			allowedFlags: []string{"-b"},
			want:         []string{"-b=shares"},
		},
		{
			name:         "positional command is dropped",
			args:         []string{"download", "-email", "alice@example.com", "-b", "shares"},
			allowedFlags: []string{"-b"},
			want:         []string{"-b", "shares"},
		},
		{
			name:         "long names are not confused with short ones",
			args:         []string{"-email", "alice@example.com", "-e", "http://minio:9000"},
			allowedFlags: []string{"-e"},
			want:         []string{"-e", "http://minio:9000"},
		},
		{
			name:         "flag followed by another flag has no value",
			args:         []string{"-c", "-b", "x"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "flag at end",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "nothing allowed",
			args:         []string{"-x", "1", "--y=2"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	assert.Equal(t, "conf.yaml", ConfigFileFlag([]string{"-a", ":1", "-c", "conf.yaml"}))
	assert.Equal(t, "other.json", ConfigFileFlag([]string{"-config=other.json"}))
	assert.Equal(t, "", ConfigFileFlag([]string{"-a", ":1"}))
	assert.Equal(t, "", ConfigFileFlag(nil))
}
