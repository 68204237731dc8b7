package manifest

import (
	"errors"
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/partscan/internal/filesystem"
	"github.com/temirov/partscan/internal/utils"
	pathutils "github.com/temirov/partscan/internal/utils/path"
)

const (
	commandUseConstant                    = "generate"
	commandShortDescriptionConstant       = "Scan the part directories and write the parts manifest"
	commandLongDescriptionConstant        = "generate lists the image files of every category directory in each source tree and writes them as a JSON manifest."
	commandExecutionErrorTemplateConstant = "manifest generation failed: %w"
	unexpectedArgumentsMessageConstant    = "manifest generation does not accept positional arguments"
	layoutPreparedLogMessageConstant      = "manifest layout prepared"
	logFieldBasePathConstant              = "base_path"
	logFieldSourceCountConstant           = "source_count"
	logFieldCategoryCountConstant         = "category_count"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// LayoutProvider supplies the configured layout.
type LayoutProvider func() Layout

// CommandBuilder assembles the Cobra command that generates the manifest.
type CommandBuilder struct {
	LoggerProvider LoggerProvider
	LayoutProvider LayoutProvider
	FileSystem     billy.Filesystem
	HomeExpander   *pathutils.HomeExpander
}

// Build constructs the generate command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.Run,
	}
	return command, nil
}

// Run executes a manifest run, printing progress to the command output stream.
func (builder *CommandBuilder) Run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	logger := builder.resolveLogger()
	layout := builder.resolveLayout()
	if validationError := layout.Validate(); validationError != nil {
		return validationError
	}

	logger.Debug(
		layoutPreparedLogMessageConstant,
		zap.String(logFieldBasePathConstant, layout.BasePath),
		zap.String(logFieldOutputPathConstant, layout.OutputPath),
		zap.Int(logFieldSourceCountConstant, len(layout.Sources)),
		zap.Int(logFieldCategoryCountConstant, len(layout.Categories)),
	)

	fileSystem := builder.resolveFileSystem()
	scanner, scannerError := NewScanner(fileSystem, layout, logger)
	if scannerError != nil {
		return scannerError
	}

	writer, writerError := NewWriter(fileSystem, layout.OutputPath)
	if writerError != nil {
		return writerError
	}

	reporter := NewReporter(utils.NewFlushingWriter(command.OutOrStdout()))
	service, serviceError := NewService(NewBuilder(scanner, layout, reporter), writer, reporter, logger)
	if serviceError != nil {
		return serviceError
	}

	if _, runError := service.Run(command.Context()); runError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	}
	return nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveLayout() Layout {
	layout := DefaultLayout()
	if builder.LayoutProvider != nil {
		layout = builder.LayoutProvider()
	}
	expander := builder.HomeExpander
	if expander == nil {
		expander = pathutils.NewHomeExpander()
	}
	return layout.Sanitize(expander)
}

//nolint:ireturn // the command works against the billy.Filesystem contract.
func (builder *CommandBuilder) resolveFileSystem() billy.Filesystem {
	if builder.FileSystem != nil {
		return builder.FileSystem
	}
	return filesystem.NewOSFileSystem()
}
