package pipeline

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// HostFS is the OS filesystem as a billy.Filesystem. Paths resolve the way
// the os package resolves them, so a relative target directory is taken
// from the working directory.
type HostFS struct {
	osfs.ChrootOS
}

// NewHostFS returns the filesystem the CLI renames on.
func NewHostFS() *HostFS {
	return &HostFS{}
}

// Chroot returns a filesystem rooted at path.
func (h *HostFS) Chroot(path string) (billy.Filesystem, error) {
	return osfs.New(path), nil
}

// Root is always "/".
func (h *HostFS) Root() string {
	return "/"
}

var _ billy.Filesystem = (*HostFS)(nil)
