package ranking

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FolderSource lists experiment folders and the files inside them.
// The pipeline and the aggregator only see the filesystem through this interface.
type FolderSource interface {
	// Subfolders returns the names of the non-hidden directories directly under root,
	// sorted ascending.
	Subfolders(root string) ([]string, error)
	// Files returns the names of the regular files directly inside folder.
	Files(folder string) ([]string, error)
}

// OSSource is the FolderSource backed by the local filesystem.
type OSSource struct{}

var _ FolderSource = OSSource{}

// Subfolders implements FolderSource.
func (OSSource) Subfolders(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", root, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") || !isDir(root, entry) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// isDir follows symlinks, so linked run directories count as folders.
func isDir(root string, entry os.DirEntry) bool {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.IsDir()
	}
	info, err := os.Stat(filepath.Join(root, entry.Name()))
	return err == nil && info.IsDir()
}

// Files implements FolderSource.
func (OSSource) Files(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", folder, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// FileMatcher selects candidate scorefiles by name.
type FileMatcher struct {
	Prefix string
	Suffix string
}

// DefaultMatcher accepts score*.sc files.
var DefaultMatcher = FileMatcher{Prefix: "score", Suffix: ".sc"}

// Match reports whether name is a candidate scorefile.
func (m FileMatcher) Match(name string) bool {
	return strings.HasPrefix(name, m.Prefix) && strings.HasSuffix(name, m.Suffix)
}
