package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-a", "http://localhost:3000", "-d", "x.db"},
			allowed: []string{"-a"},
			want:    []string{"-a", "http://localhost:3000"},
		},
		{
			name:    "equals form",
			args:    []string{"-t=5", "-a", "x"},
			allowed: []string{"-t"},
			want:    []string{"-t=5"},
		},
		{
			name:    "double dash matches single dash",
			args:    []string{"--config=alt.json", "-x", "1"},
			allowed: []string{"-config"},
			want:    []string{"--config=alt.json"},
		},
		{
			name:    "flag followed by another flag keeps no value",
			args:    []string{"-c", "-a", "x"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "positional arguments ignored",
			args:    []string{"positional", "-l", "debug"},
			allowed: []string{"-l"},
			want:    []string{"-l", "debug"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-x", "1"},
			allowed: nil,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	assert.Equal(t, "conf.json", ConfigFileFlag([]string{"-a", "x", "-c", "conf.json"}))
	assert.Equal(t, "alt.json", ConfigFileFlag([]string{"-config=alt.json"}))
	assert.Equal(t, "", ConfigFileFlag([]string{"-a", "x"}))
}
