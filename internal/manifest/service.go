package manifest

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

const (
	manifestWrittenLogMessageConstant = "manifest written"
	manifestFailedLogMessageConstant  = "manifest write failed"
	scanDegradedLogMessageConstant    = "manifest built with degraded categories"
	logFieldOutputPathConstant        = "output_path"
	logFieldTotalConstant             = "total"
	logFieldDegradedCountConstant     = "degraded_count"
	missingBuilderMessageConstant     = "service requires a builder"
	missingWriterMessageConstant      = "service requires a writer"
)

// Service runs the scan, summary, and write pipeline once.
type Service struct {
	builder  *Builder
	writer   *Writer
	reporter *Reporter
	logger   *zap.Logger
}

// NewService wires the pipeline stages. reporter and logger may be nil.
func NewService(builder *Builder, writer *Writer, reporter *Reporter, logger *zap.Logger) (*Service, error) {
	if builder == nil {
		return nil, errors.New(missingBuilderMessageConstant)
	}
	if writer == nil {
		return nil, errors.New(missingWriterMessageConstant)
	}
	if reporter == nil {
		reporter = NewReporter(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{builder: builder, writer: writer, reporter: reporter, logger: logger}, nil
}

// Run builds the manifest, reports totals, and writes the output file. Only output failures, wrapped in ErrOutputWrite, are returned; a context cancelled before the run starts aborts it untouched.
func (service *Service) Run(executionContext context.Context) (Summary, error) {
	if executionContext != nil {
		if contextError := executionContext.Err(); contextError != nil {
			return Summary{}, contextError
		}
	}

	service.reporter.Introduction()
	manifest, results := service.builder.Build()

	degradedCount := 0
	for _, result := range results {
		if result.Status != ScanStatusOK {
			degradedCount++
		}
	}
	if degradedCount > 0 {
		service.logger.Debug(scanDegradedLogMessageConstant, zap.Int(logFieldDegradedCountConstant, degradedCount))
	}

	summary := Summarize(manifest)
	service.reporter.Summary(summary)

	if writeError := service.writer.Write(manifest); writeError != nil {
		service.reporter.Failed(writeError)
		service.logger.Error(manifestFailedLogMessageConstant, zap.String(logFieldOutputPathConstant, service.writer.OutputPath()), zap.Error(writeError))
		return summary, writeError
	}

	service.reporter.Saved(service.writer.OutputPath())
	service.logger.Info(manifestWrittenLogMessageConstant, zap.String(logFieldOutputPathConstant, service.writer.OutputPath()), zap.Int(logFieldTotalConstant, summary.Total))
	return summary, nil
}
