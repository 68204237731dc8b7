package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"

	"github.com/temirov/partscan/internal/filesystem"
)

func TestDirectoryExistsInMemory(testInstance *testing.T) {
	fileSystem := filesystem.NewInMemoryFileSystem()
	require.NoError(testInstance, fileSystem.MkdirAll("assets/image/parti_estratte_film/head", 0o755))
	require.NoError(testInstance, util.WriteFile(fileSystem, "assets/image/parti_estratte_film/head/a.png", []byte("png"), 0o644))

	testCases := []struct {
		name           string
		path           string
		expectedExists bool
	}{
		{name: "directory", path: "assets/image/parti_estratte_film/head", expectedExists: true},
		{name: "file", path: "assets/image/parti_estratte_film/head/a.png", expectedExists: true},
		{name: "missing", path: "assets/image/parti_estratte_ai/eyes", expectedExists: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			exists, existsError := filesystem.DirectoryExists(fileSystem, testCase.path)
			require.NoError(testInstance, existsError)
			require.Equal(testInstance, testCase.expectedExists, exists)
		})
	}
}

func TestOSFileSystemUsesPathsAsGiven(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	categoryDirectory := filepath.Join(temporaryDirectory, "head")
	require.NoError(testInstance, os.MkdirAll(categoryDirectory, 0o755))

	fileSystem := filesystem.NewOSFileSystem()
	exists, existsError := filesystem.DirectoryExists(fileSystem, categoryDirectory)
	require.NoError(testInstance, existsError)
	require.True(testInstance, exists)

	entries, readError := fileSystem.ReadDir(temporaryDirectory)
	require.NoError(testInstance, readError)
	require.Len(testInstance, entries, 1)
	require.Equal(testInstance, "head", entries[0].Name())
}
