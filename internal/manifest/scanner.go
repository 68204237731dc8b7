package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/go-git/go-billy/v5"
	"go.uber.org/zap"

	"github.com/temirov/partscan/internal/filesystem"
)

const (
	missingDirectoryLogMessageConstant = "category directory not found"
	scanFailureLogMessageConstant      = "category directory scan failed"
	scanCompletedLogMessageConstant    = "category directory scanned"
	logFieldPathConstant               = "path"
	logFieldSourceConstant             = "source"
	logFieldCategoryConstant           = "category"
	logFieldImageCountConstant         = "image_count"
	logFieldSkippedCountConstant       = "skipped_count"
	scanErrorTemplateConstant          = "%w: %s: %w"
	missingDirectoryTemplateConstant   = "%w: %s"
	missingFileSystemMessageConstant   = "scanner requires a filesystem"
)

// DirectoryReader is the subset of billy.Filesystem the scanner needs.
type DirectoryReader interface {
	billy.Basic
	billy.Dir
}

// Scanner lists the image files of category directories.
type Scanner struct {
	fileSystem DirectoryReader
	layout     Layout
	logger     *zap.Logger
}

// NewScanner constructs a Scanner reading through fileSystem. A nil logger discards diagnostics.
func NewScanner(fileSystem DirectoryReader, layout Layout, logger *zap.Logger) (*Scanner, error) {
	if fileSystem == nil {
		return nil, errors.New(missingFileSystemMessageConstant)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{fileSystem: fileSystem, layout: layout, logger: logger}, nil
}

// ScanCategory lists the immediate entries of the source/category directory and keeps non-directory entries with an image extension, sorted by byte order.
// Missing or unreadable directories are logged and yield an empty list.
func (scanner *Scanner) ScanCategory(source Source, category string) ScanResult {
	categoryPath := scanner.layout.CategoryPath(source, category)
	result := ScanResult{
		Source:   source.Name,
		Category: category,
		Path:     categoryPath,
		Files:    []string{},
		Status:   ScanStatusOK,
	}

	exists, existsError := filesystem.DirectoryExists(scanner.fileSystem, categoryPath)
	if existsError != nil {
		return scanner.failed(result, existsError)
	}
	if !exists {
		result.Status = ScanStatusMissingDirectory
		result.Err = fmt.Errorf(missingDirectoryTemplateConstant, ErrMissingDirectory, categoryPath)
		scanner.logger.Warn(
			missingDirectoryLogMessageConstant,
			zap.String(logFieldPathConstant, categoryPath),
			zap.String(logFieldSourceConstant, source.Name),
			zap.String(logFieldCategoryConstant, category),
		)
		return result
	}

	entries, readError := scanner.fileSystem.ReadDir(categoryPath)
	if readError != nil {
		return scanner.failed(result, readError)
	}

	images := make([]string, 0, len(entries))
	for _, entry := range entries {
		if scanner.isDirectory(categoryPath, entry) {
			continue
		}
		if scanner.layout.HasImageExtension(entry.Name()) {
			images = append(images, entry.Name())
		}
	}
	sort.Strings(images)
	result.Files = images

	scanner.logger.Debug(
		scanCompletedLogMessageConstant,
		zap.String(logFieldPathConstant, categoryPath),
		zap.Int(logFieldImageCountConstant, len(images)),
		zap.Int(logFieldSkippedCountConstant, len(entries)-len(images)),
	)
	return result
}

// isDirectory follows symlinks; a dangling link is not a directory.
func (scanner *Scanner) isDirectory(categoryPath string, entry fs.FileInfo) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Mode()&fs.ModeSymlink == 0 {
		return false
	}
	target, statError := scanner.fileSystem.Stat(filepath.Join(categoryPath, entry.Name()))
	return statError == nil && target.IsDir()
}

func (scanner *Scanner) failed(result ScanResult, cause error) ScanResult {
	result.Status = ScanStatusFailed
	result.Files = []string{}
	result.Err = fmt.Errorf(scanErrorTemplateConstant, ErrScanFailure, result.Path, cause)
	scanner.logger.Error(
		scanFailureLogMessageConstant,
		zap.String(logFieldPathConstant, result.Path),
		zap.String(logFieldSourceConstant, result.Source),
		zap.String(logFieldCategoryConstant, result.Category),
		zap.Error(cause),
	)
	return result
}
