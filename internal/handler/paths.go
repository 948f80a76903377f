package handler

import (
	"path/filepath"
	"strings"
)

// NormalizePath converts Windows separators to the platform separator and
// cleans the result.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}
	return filepath.Clean(filepath.FromSlash(strings.ReplaceAll(p, "\\", "/")))
}

// VaultRelative returns target relative to vaultDir using forward slashes.
func VaultRelative(vaultDir, target string) (string, error) {
	rel, err := filepath.Rel(NormalizePath(vaultDir), NormalizePath(target))
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// Subdirectory returns the first directory of a vault relative path, or ""
// for notes at the vault root.
func Subdirectory(vaultDir, target string) string {
	rel, err := VaultRelative(vaultDir, target)
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.TrimPrefix(rel, "./"), "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[0]
}
