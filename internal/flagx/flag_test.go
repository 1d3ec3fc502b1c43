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
			name:    "keeps allowed flag with separate value",
			args:    []string{"-d", "postgres://x", "-z", "nope"},
			allowed: []string{"-d"},
			want:    []string{"-d", "postgres://x"},
		},
		{
			name:    "keeps allowed flag with equals value",
			args:    []string{"--addr=:8080", "--other=1"},
			allowed: []string{"--addr"},
			want:    []string{"--addr=:8080"},
		},
		{
			name:    "empty when nothing allowed",
			args:    []string{"-a", "1", "-b", "2"},
			allowed: []string{},
			want:    []string{},
		},
		{
			name:    "flag without value before another flag",
			args:    []string{"-v", "-d", "dsn"},
			allowed: []string{"-v", "-d"},
			want:    []string{"-v", "-d", "dsn"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	assert.Equal(t, "/path/short.json", JsonConfigFlags([]string{"-d", "x", "-c", "/path/short.json"}))
	assert.Equal(t, "/path/long.json", JsonConfigFlags([]string{"-config", "/path/long.json"}))
	assert.Equal(t, "/path/eq.json", JsonConfigFlags([]string{"--config=/path/eq.json"}))
	assert.Equal(t, "", JsonConfigFlags([]string{"-d", "x"}))
}
