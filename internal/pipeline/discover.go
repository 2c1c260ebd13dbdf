package pipeline

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5"
)

// Entry is one file found in the target directory.
type Entry struct {
	Path string // dir joined with Name.
	Name string // Base name; the only part transformations touch.
}

// ListFiles returns the regular files directly inside dir, in the order
// fsys.ReadDir reports them. That order is not re-sorted: it is the order
// sequence values are handed out in. For the OS and in-memory filesystems
// it is lexical by name.
//
// Subdirectories, symlinks to directories, dangling symlinks and special
// files are skipped. A symlink to a regular file is kept. When include is
// non-empty, only base names matching that doublestar glob are returned.
func ListFiles(fsys billy.Filesystem, dir, include string) ([]Entry, error) {
	fi, err := fsys.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("list %s: %w", dir, ErrNotADirectory)
	}

	infos, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	files := make([]Entry, 0, len(infos))
	for _, info := range infos {
		name := info.Name()
		if include != "" {
			ok, err := doublestar.Match(include, name)
			if err != nil {
				return nil, fmt.Errorf("list %s: glob %q: %w", dir, include, err)
			}
			if !ok {
				continue
			}
		}
		path := fsys.Join(dir, name)
		if !isRegularFile(fsys, path, info) {
			continue
		}
		files = append(files, Entry{Path: path, Name: name})
	}
	return files, nil
}

// isRegularFile resolves symlinks through fsys.Stat.
func isRegularFile(fsys billy.Filesystem, path string, info os.FileInfo) bool {
	if info.Mode()&os.ModeSymlink == 0 {
		return info.Mode().IsRegular()
	}
	target, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	return target.Mode().IsRegular()
}
