package manifest

// CategoryScanner scans one source/category directory.
type CategoryScanner interface {
	ScanCategory(source Source, category string) ScanResult
}

// ProgressObserver receives scan progress in declaration order.
type ProgressObserver interface {
	SourceStarted(source Source)
	CategoryScanned(result ScanResult)
}

// Builder assembles a Manifest by scanning every declared source and category.
type Builder struct {
	scanner  CategoryScanner
	layout   Layout
	observer ProgressObserver
}

// NewBuilder constructs a Builder. observer may be nil.
func NewBuilder(scanner CategoryScanner, layout Layout, observer ProgressObserver) *Builder {
	return &Builder{scanner: scanner, layout: layout, observer: observer}
}

// Build scans sources then categories in declared order and fills every slot, so failed and missing scans still appear as empty lists.
func (builder *Builder) Build() (Manifest, []ScanResult) {
	manifest := NewManifest(builder.layout)
	results := make([]ScanResult, 0, len(builder.layout.Sources)*len(builder.layout.Categories))

	for _, source := range builder.layout.Sources {
		if builder.observer != nil {
			builder.observer.SourceStarted(source)
		}
		for _, category := range builder.layout.Categories {
			result := builder.scanner.ScanCategory(source, category)
			manifest.Set(source.Name, category, result.Files)
			results = append(results, result)
			if builder.observer != nil {
				builder.observer.CategoryScanned(result)
			}
		}
	}

	return manifest, results
}
