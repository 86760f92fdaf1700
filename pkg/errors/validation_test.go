package errors

import (
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple name", "straight", false},
		{"name with underscore", "bend_circular", false},
		{"name with digits", "taper2", false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 257), true},
		{"control character", "wave\x01guide", true},
		{"forward slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"null byte", "a\x00b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePortName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"optical port", "o1", false},
		{"electrical port", "e1", false},
		{"named port", "out", false},
		{"promoted port", "taper.o2", false},
		{"underscored", "out_tm", false},
		{"empty", "", true},
		{"leading digit", "1out", true},
		{"leading dot", ".o1", true},
		{"space", "o 1", true},
		{"comma", "o,1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePortName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePortName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateNetlistFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple filename", "mzi.toml", false},
		{"empty", "", true},
		{"path separator", "circuits/mzi.toml", true},
		{"backslash", "circuits\\mzi.toml", true},
		{"hidden file", ".mzi.toml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNetlistFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNetlistFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative path", "out/mzi.json", false},
		{"single file", "mzi.json", false},
		{"empty", "", true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "../secrets", true},
		{"backslash", "out\\mzi.json", true},
		{"too long", strings.Repeat("a", 501), true},
		{"control character", "out/\x01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
