package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
)

const (
	statErrorTemplateConstant = "stat %q: %w"
	hostRootPathConstant      = "/"
)

// hostFileSystem passes paths straight to the operating system, so relative paths resolve against the working directory.
type hostFileSystem struct {
	osfs.ChrootOS
}

// Chroot returns a filesystem rooted at path.
//
//nolint:ireturn // signature is dictated by billy.Chroot.
func (fileSystem *hostFileSystem) Chroot(path string) (billy.Filesystem, error) {
	return osfs.New(path), nil
}

// Root returns the root path of the host filesystem.
func (fileSystem *hostFileSystem) Root() string {
	return hostRootPathConstant
}

// NewOSFileSystem returns a filesystem that resolves relative paths against the process working directory and absolute paths as-is.
//
//nolint:ireturn // callers depend on the billy.Filesystem contract.
func NewOSFileSystem() billy.Filesystem {
	return &hostFileSystem{}
}

// NewInMemoryFileSystem returns an empty in-memory filesystem.
//
//nolint:ireturn // callers depend on the billy.Filesystem contract.
func NewInMemoryFileSystem() billy.Filesystem {
	return memfs.New()
}

// DirectoryExists reports whether path exists. A non-directory entry still counts as existing so that listing it surfaces a scan failure.
func DirectoryExists(fileSystem billy.Basic, path string) (bool, error) {
	_, statError := fileSystem.Stat(path)
	switch {
	case statError == nil:
		return true, nil
	case errors.Is(statError, fs.ErrNotExist), os.IsNotExist(statError):
		return false, nil
	default:
		return false, fmt.Errorf(statErrorTemplateConstant, path, statError)
	}
}
