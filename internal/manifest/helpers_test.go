package manifest_test

import (
	"errors"
	"os"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"

	"github.com/temirov/partscan/internal/filesystem"
	"github.com/temirov/partscan/internal/manifest"
)

const (
	testFilePermissionsConstant      = 0o644
	testDirectoryPermissionsConstant = 0o755
	testImageContentConstant         = "not really an image"
)

var errInjectedFailure = errors.New("injected failure")

// failingFileSystem delegates to a real filesystem but fails the selected operations.
type failingFileSystem struct {
	billy.Filesystem
	failReadDir  bool
	failMkdirAll bool
	failOpenFile bool
}

func (fileSystem *failingFileSystem) ReadDir(path string) ([]os.FileInfo, error) {
	if fileSystem.failReadDir {
		return nil, errInjectedFailure
	}
	return fileSystem.Filesystem.ReadDir(path)
}

func (fileSystem *failingFileSystem) MkdirAll(path string, permissions os.FileMode) error {
	if fileSystem.failMkdirAll {
		return errInjectedFailure
	}
	return fileSystem.Filesystem.MkdirAll(path, permissions)
}

func (fileSystem *failingFileSystem) OpenFile(path string, flag int, permissions os.FileMode) (billy.File, error) {
	if fileSystem.failOpenFile {
		return nil, errInjectedFailure
	}
	return fileSystem.Filesystem.OpenFile(path, flag, permissions)
}

func newAssetTree(testInstance *testing.T, files map[string]string, directories ...string) billy.Filesystem {
	testInstance.Helper()

	fileSystem := filesystem.NewInMemoryFileSystem()
	for _, directory := range directories {
		require.NoError(testInstance, fileSystem.MkdirAll(directory, testDirectoryPermissionsConstant))
	}
	for filePath, content := range files {
		require.NoError(testInstance, util.WriteFile(fileSystem, filePath, []byte(content), testFilePermissionsConstant))
	}
	return fileSystem
}

func smallLayout() manifest.Layout {
	layout := manifest.DefaultLayout()
	layout.Categories = []string{"head", "eyes"}
	return layout
}
