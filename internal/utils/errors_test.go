package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorWrappers(t *testing.T) {
	cause := errors.New("disk full")

	tests := []struct {
		name     string
		wrap     func(string, error) error
		expected string
	}{
		{"parse", WrapParseError, "failed to parse config.go: disk full"},
		{"generate", WrapGenerateError, "failed to generate config.go: disk full"},
		{"create", WrapCreateError, "failed to create config.go: disk full"},
		{"write", WrapWriteError, "failed to write config.go: disk full"},
		{"scan", WrapScanError, "failed to scan config.go: disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.wrap("config.go", cause)
			assert.Equal(t, tt.expected, err.Error())
			assert.ErrorIs(t, err, cause)
		})
	}
}
