package appconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvFlagToEnvironment(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Environment
	}{
		{"production", "production", Production},
		{"test", "test", Test},
		{"development", "development", Development},
		{"unknown falls back to development", "staging", Development},
		{"empty falls back to development", "", Development},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EnvFlagToEnvironment(tt.input))
		})
	}
}

func TestEnvironmentString(t *testing.T) {
	assert.Equal(t, "production", Production.String())
	assert.Equal(t, "test", Test.String())
	assert.Equal(t, "development", Development.String())
}
