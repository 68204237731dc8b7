package manifest

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	bannerRuleWidthConstant             = 60
	bannerRuleCharacterConstant         = "="
	bannerTitleTemplateConstant         = "  %s\n"
	applicationTitleConstant            = "BODY PARTS MANIFEST GENERATOR"
	scanningSourceTitleTemplateConstant = "SCANNING %s PARTS"
	scanningIntroductionConstant        = "\n📁 Scanning directories for image files...\n   (All image files will be included, regardless of name)\n"
	categoryLineTemplateConstant        = "  %s %-8s → %3d images\n"
	categoryFailureTemplateConstant     = "  %s %-8s → %3d images (%s)\n"
	scanOKMarkerConstant                = "✓"
	scanMissingMarkerConstant           = "⚠"
	scanFailedMarkerConstant            = "✗"
	missingDirectoryNoteConstant        = "directory not found"
	scanFailedNoteConstant              = "scan failed"
	summaryTitleConstant                = "📊 SUMMARY"
	summarySourceHeaderConstant         = "Source"
	summaryCountHeaderConstant          = "Images"
	summaryTotalLabelConstant           = "Total"
	savedTemplateConstant               = "\n✅ Manifest saved to: %s\n"
	savedHintConstant                   = "\n💡 You can now use this file in your web application!\n   Just make sure the HTML file can access it.\n\n"
	failedTemplateConstant              = "\n❌ Manifest write failed: %v\n"
)

// Reporter renders human-readable progress for a manifest run.
type Reporter struct {
	writer io.Writer
}

// NewReporter constructs a Reporter writing to writer; a nil writer discards output.
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = io.Discard
	}
	return &Reporter{writer: writer}
}

// Introduction prints the run banner.
func (reporter *Reporter) Introduction() {
	reporter.banner(applicationTitleConstant)
	fmt.Fprint(reporter.writer, scanningIntroductionConstant)
}

// SourceStarted prints the section heading for source.
func (reporter *Reporter) SourceStarted(source Source) {
	reporter.banner(fmt.Sprintf(scanningSourceTitleTemplateConstant, strings.ToUpper(source.Name)))
}

// CategoryScanned prints one line per category with its image count.
func (reporter *Reporter) CategoryScanned(result ScanResult) {
	switch result.Status {
	case ScanStatusMissingDirectory:
		fmt.Fprintf(reporter.writer, categoryFailureTemplateConstant, scanMissingMarkerConstant, result.Category, len(result.Files), missingDirectoryNoteConstant)
	case ScanStatusFailed:
		fmt.Fprintf(reporter.writer, categoryFailureTemplateConstant, scanFailedMarkerConstant, result.Category, len(result.Files), scanFailedNoteConstant)
	default:
		fmt.Fprintf(reporter.writer, categoryLineTemplateConstant, scanOKMarkerConstant, result.Category, len(result.Files))
	}
}

// Summary prints per-source and grand totals as a table.
func (reporter *Reporter) Summary(summary Summary) {
	reporter.banner(summaryTitleConstant)

	tableWriter := table.NewWriter()
	tableWriter.SetStyle(table.StyleRounded)
	tableWriter.AppendHeader(table.Row{summarySourceHeaderConstant, summaryCountHeaderConstant})
	for _, sourceTotal := range summary.Sources {
		tableWriter.AppendRow(table.Row{sourceTotal.Source, sourceTotal.Count})
	}
	tableWriter.AppendFooter(table.Row{summaryTotalLabelConstant, summary.Total})
	tableWriter.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft, AlignFooter: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignRight, AlignFooter: text.AlignRight},
	})

	fmt.Fprintln(reporter.writer, tableWriter.Render())
}

// Saved confirms the manifest destination.
func (reporter *Reporter) Saved(outputPath string) {
	fmt.Fprintf(reporter.writer, savedTemplateConstant, outputPath)
	fmt.Fprint(reporter.writer, savedHintConstant)
}

// Failed reports why the manifest could not be written.
func (reporter *Reporter) Failed(cause error) {
	fmt.Fprintf(reporter.writer, failedTemplateConstant, cause)
}

func (reporter *Reporter) banner(title string) {
	rule := strings.Repeat(bannerRuleCharacterConstant, bannerRuleWidthConstant)
	fmt.Fprintf(reporter.writer, "\n%s\n", rule)
	fmt.Fprintf(reporter.writer, bannerTitleTemplateConstant, title)
	fmt.Fprintln(reporter.writer, rule)
}
