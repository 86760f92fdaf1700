package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateName validates a component, port, or cross-section name.
// Names end up as keys in registries and as identifiers in exported layout
// files, so the rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators (names are used in cache file paths)
//   - Maximum length of 256 characters
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\\x00") {
		return New(ErrCodeInvalidInput, "name contains invalid characters: %q", name)
	}

	return nil
}

// portNameRegex matches valid port names: a leading letter followed by
// letters, digits, underscores, or dots (dots separate prefix segments on
// promoted ports, e.g. "taper.o2").
var portNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.]*$`)

// ValidatePortName validates a port name against the naming convention.
func ValidatePortName(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	if !portNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid port name: %q", name)
	}

	return nil
}

// ValidateNetlistFilename validates a netlist filename for safety.
// It ensures the filename is a simple basename without path components.
func ValidateNetlistFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidNetlist, "netlist filename cannot be empty")
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidNetlist, "netlist filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidNetlist, "netlist filename cannot be a hidden file")
	}

	return nil
}

// ValidatePath validates a relative file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
