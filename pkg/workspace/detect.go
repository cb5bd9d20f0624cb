package workspace

import (
	"os"
	"path/filepath"
)

// RootNoteFile marks the top of a vault.
const RootNoteFile = "root.md"

// FindVaultRoot walks up from path to the nearest directory holding a root
// note. It returns "" when none is found.
func FindVaultRoot(path string) (string, error) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	for {
		info, err := os.Stat(filepath.Join(dir, RootNoteFile))
		if err == nil && !info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// DetectCurrent finds the vault containing the current directory.
func DetectCurrent() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindVaultRoot(cwd)
}
