package csvtab

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// resolvePath resolves name to a readable absolute path. Absolute names
// are checked directly. Relative names are tried against the working
// directory first, then each directory of the colon-separated searchPath
// in order; the first readable match wins.
func resolvePath(name, searchPath string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty path", ErrUnreadableFile)
	}
	candidates := []string{name}
	if !filepath.IsAbs(name) {
		for _, dir := range strings.Split(searchPath, ":") {
			if dir != "" {
				candidates = append(candidates, filepath.Join(dir, name))
			}
		}
	}
	for _, c := range candidates {
		if !readable(c) {
			continue
		}
		abs, err := filepath.Abs(c)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnreadableFile, err)
		}
		return abs, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnreadableFile, name)
}

// readable reports whether path is an openable regular file. Opening is
// the only reliable permission check.
func readable(path string) bool {
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
