package assets

import "path/filepath"

// ResolvePath joins path onto root unless path is absolute or root is
// empty.
func ResolvePath(root, path string) string {
	if root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
