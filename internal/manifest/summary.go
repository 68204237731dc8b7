package manifest

// SourceTotal counts the image files listed for one source.
type SourceTotal struct {
	Source string
	Count  int
}

// Summary aggregates manifest counts per source and overall.
type Summary struct {
	Sources []SourceTotal
	Total   int
}

// Summarize counts the listed files of every source in manifest order.
func Summarize(manifest Manifest) Summary {
	summary := Summary{Sources: make([]SourceTotal, 0, len(manifest.Sources))}
	for _, sourceListing := range manifest.Sources {
		sourceTotal := SourceTotal{Source: sourceListing.Source}
		for _, categoryListing := range sourceListing.Categories {
			sourceTotal.Count += len(categoryListing.Files)
		}
		summary.Sources = append(summary.Sources, sourceTotal)
		summary.Total += sourceTotal.Count
	}
	return summary
}

// Count returns the total for source, or zero when the source is unknown.
func (summary Summary) Count(source string) int {
	for _, sourceTotal := range summary.Sources {
		if sourceTotal.Source == source {
			return sourceTotal.Count
		}
	}
	return 0
}
