package sarif

import (
	"path/filepath"
	"strings"
)

// PathWithin checks if a path is within another path (root).
// Returns true if path is within root, or if root is empty.
func PathWithin(path, root string) bool {
	if root == "" {
		return true
	}
	cleanPath, err1 := filepath.Abs(path)
	cleanRoot, err2 := filepath.Abs(root)
	if err1 != nil || err2 != nil {
		cleanPath = filepath.Clean(path)
		cleanRoot = filepath.Clean(root)
	}
	if cleanPath == cleanRoot {
		return true
	}
	rootWithSep := strings.TrimSuffix(cleanRoot, string(filepath.Separator)) + string(filepath.Separator)
	return strings.HasPrefix(cleanPath, rootWithSep)
}

// ArtifactURI converts a local file path into a SARIF artifact URI.
// Paths inside sourceFolder become relative to it; everything else is kept absolute.
// Separators are always forward slashes.
func ArtifactURI(path, sourceFolder string) string {
	if path == "" {
		return ""
	}
	if sourceFolder != "" && filepath.IsAbs(path) && PathWithin(path, sourceFolder) {
		if rel, err := filepath.Rel(sourceFolder, path); err == nil && rel != "." {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(path)
}
