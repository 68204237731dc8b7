package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

const (
	manifestIndentConstant                 = "  "
	outputDirectoryPermissionsConstant     = 0o755
	outputFilePermissionsConstant          = 0o644
	currentDirectoryConstant               = "."
	encodeErrorTemplateConstant            = "%w: encode manifest: %w"
	createDirectoryErrorTemplateConstant   = "%w: create directory %s: %w"
	writeFileErrorTemplateConstant         = "%w: write %s: %w"
	missingOutputFileSystemMessageConstant = "writer requires a filesystem"
)

// OutputFileSystem is the subset of billy.Filesystem the writer needs.
type OutputFileSystem interface {
	billy.Basic
	billy.Dir
}

// Writer persists manifests to a fixed output path.
type Writer struct {
	fileSystem OutputFileSystem
	outputPath string
}

// NewWriter constructs a Writer targeting outputPath on fileSystem.
func NewWriter(fileSystem OutputFileSystem, outputPath string) (*Writer, error) {
	if fileSystem == nil {
		return nil, errors.New(missingOutputFileSystemMessageConstant)
	}
	return &Writer{fileSystem: fileSystem, outputPath: outputPath}, nil
}

// OutputPath returns the manifest destination.
func (writer *Writer) OutputPath() string {
	return writer.outputPath
}

// Encode renders manifest as UTF-8 JSON indented by two spaces without a trailing newline.
func Encode(manifest Manifest) ([]byte, error) {
	buffer := &bytes.Buffer{}
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", manifestIndentConstant)
	if encodeError := encoder.Encode(manifest); encodeError != nil {
		return nil, encodeError
	}
	return bytes.TrimSuffix(buffer.Bytes(), []byte("\n")), nil
}

// Write creates the output directory when needed and replaces the manifest file. Every failure wraps ErrOutputWrite.
func (writer *Writer) Write(manifest Manifest) error {
	encodedManifest, encodeError := Encode(manifest)
	if encodeError != nil {
		return fmt.Errorf(encodeErrorTemplateConstant, ErrOutputWrite, encodeError)
	}

	if outputDirectory := filepath.Dir(writer.outputPath); outputDirectory != currentDirectoryConstant {
		if mkdirError := writer.fileSystem.MkdirAll(outputDirectory, outputDirectoryPermissionsConstant); mkdirError != nil {
			return fmt.Errorf(createDirectoryErrorTemplateConstant, ErrOutputWrite, outputDirectory, mkdirError)
		}
	}

	if writeError := util.WriteFile(writer.fileSystem, writer.outputPath, encodedManifest, outputFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(writeFileErrorTemplateConstant, ErrOutputWrite, writer.outputPath, writeError)
	}
	return nil
}
