package manifest

import (
	"fmt"
	"path/filepath"
	"strings"

	pathutils "github.com/temirov/partscan/internal/utils/path"
)

const (
	defaultBasePathConstant           = "assets/image"
	defaultOutputPathConstant         = "assets/parts_manifest.json"
	filmSourceNameConstant            = "film"
	filmSourceDirectoryConstant       = "parti_estratte_film"
	aiSourceNameConstant              = "ai"
	aiSourceDirectoryConstant         = "parti_estratte_ai"
	extensionSeparatorConstant        = "."
	basePathConfigKeyConstant         = "base_path"
	outputPathConfigKeyConstant       = "output_path"
	sourcesConfigKeyConstant          = "sources"
	categoriesConfigKeyConstant       = "categories"
	extensionsConfigKeyConstant       = "extensions"
	configurationKeyTemplateConstant  = "%s.%s"
	missingSourcesMessageConstant     = "at least one source must be configured"
	missingCategoriesMessageConstant  = "at least one category must be configured"
	missingExtensionsMessageConstant  = "at least one image extension must be configured"
	missingOutputPathMessageConstant  = "output path must be configured"
	duplicateSourceTemplateConstant   = "duplicate source %q"
	duplicateCategoryTemplateConstant = "duplicate category %q"
	sourceDirectoryTemplateConstant   = "source %q has no directory"
	sourceNameTemplateConstant        = "source for directory %q has no name"
	layoutErrorTemplateConstant       = "%w: %s"
)

var (
	defaultCategories      = []string{"head", "eyes", "chest", "arms", "hand", "foot"}
	defaultImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp"}
)

// Source names one asset tree and the directory under the base path that holds it.
type Source struct {
	Name      string `mapstructure:"name"`
	Directory string `mapstructure:"directory"`
}

// Layout describes where asset trees live, which categories and extensions are scanned, and where the manifest is written.
type Layout struct {
	BasePath   string   `mapstructure:"base_path"`
	OutputPath string   `mapstructure:"output_path"`
	Sources    []Source `mapstructure:"sources"`
	Categories []string `mapstructure:"categories"`
	Extensions []string `mapstructure:"extensions"`
}

// DefaultLayout returns the film and ai trees under assets/image with the six body-part categories.
func DefaultLayout() Layout {
	return Layout{
		BasePath:   defaultBasePathConstant,
		OutputPath: defaultOutputPathConstant,
		Sources: []Source{
			{Name: filmSourceNameConstant, Directory: filmSourceDirectoryConstant},
			{Name: aiSourceNameConstant, Directory: aiSourceDirectoryConstant},
		},
		Categories: append([]string(nil), defaultCategories...),
		Extensions: append([]string(nil), defaultImageExtensions...),
	}
}

// DefaultConfigurationValues exposes DefaultLayout as configuration defaults rooted at keyPrefix.
func DefaultConfigurationValues(keyPrefix string) map[string]any {
	layout := DefaultLayout()

	sources := make([]map[string]any, 0, len(layout.Sources))
	for _, source := range layout.Sources {
		sources = append(sources, map[string]any{"name": source.Name, "directory": source.Directory})
	}

	return map[string]any{
		fmt.Sprintf(configurationKeyTemplateConstant, keyPrefix, basePathConfigKeyConstant):   layout.BasePath,
		fmt.Sprintf(configurationKeyTemplateConstant, keyPrefix, outputPathConfigKeyConstant): layout.OutputPath,
		fmt.Sprintf(configurationKeyTemplateConstant, keyPrefix, sourcesConfigKeyConstant):    sources,
		fmt.Sprintf(configurationKeyTemplateConstant, keyPrefix, categoriesConfigKeyConstant): layout.Categories,
		fmt.Sprintf(configurationKeyTemplateConstant, keyPrefix, extensionsConfigKeyConstant): layout.Extensions,
	}
}

// Sanitize trims every value, expands home shortcuts in paths, drops blank entries, and normalizes extensions to lower-case dotted suffixes.
func (layout Layout) Sanitize(expander *pathutils.HomeExpander) Layout {
	sanitized := Layout{
		BasePath:   expander.Expand(layout.BasePath),
		OutputPath: expander.Expand(layout.OutputPath),
	}

	for _, source := range layout.Sources {
		trimmedSource := Source{Name: strings.TrimSpace(source.Name), Directory: strings.TrimSpace(source.Directory)}
		if len(trimmedSource.Name) == 0 && len(trimmedSource.Directory) == 0 {
			continue
		}
		sanitized.Sources = append(sanitized.Sources, trimmedSource)
	}

	for _, category := range layout.Categories {
		if trimmedCategory := strings.TrimSpace(category); len(trimmedCategory) > 0 {
			sanitized.Categories = append(sanitized.Categories, trimmedCategory)
		}
	}

	for _, extension := range layout.Extensions {
		normalizedExtension := strings.ToLower(strings.TrimSpace(extension))
		if len(normalizedExtension) == 0 {
			continue
		}
		if !strings.HasPrefix(normalizedExtension, extensionSeparatorConstant) {
			normalizedExtension = extensionSeparatorConstant + normalizedExtension
		}
		sanitized.Extensions = append(sanitized.Extensions, normalizedExtension)
	}

	return sanitized
}

// Validate reports ErrInvalidLayout when the layout cannot produce a well-formed manifest.
func (layout Layout) Validate() error {
	switch {
	case len(layout.Sources) == 0:
		return fmt.Errorf(layoutErrorTemplateConstant, ErrInvalidLayout, missingSourcesMessageConstant)
	case len(layout.Categories) == 0:
		return fmt.Errorf(layoutErrorTemplateConstant, ErrInvalidLayout, missingCategoriesMessageConstant)
	case len(layout.Extensions) == 0:
		return fmt.Errorf(layoutErrorTemplateConstant, ErrInvalidLayout, missingExtensionsMessageConstant)
	case len(strings.TrimSpace(layout.OutputPath)) == 0:
		return fmt.Errorf(layoutErrorTemplateConstant, ErrInvalidLayout, missingOutputPathMessageConstant)
	}

	seenSources := make(map[string]struct{}, len(layout.Sources))
	for _, source := range layout.Sources {
		if len(source.Name) == 0 {
			return fmt.Errorf(layoutErrorTemplateConstant, ErrInvalidLayout, fmt.Sprintf(sourceNameTemplateConstant, source.Directory))
		}
		if len(source.Directory) == 0 {
			return fmt.Errorf(layoutErrorTemplateConstant, ErrInvalidLayout, fmt.Sprintf(sourceDirectoryTemplateConstant, source.Name))
		}
		if _, duplicate := seenSources[source.Name]; duplicate {
			return fmt.Errorf(layoutErrorTemplateConstant, ErrInvalidLayout, fmt.Sprintf(duplicateSourceTemplateConstant, source.Name))
		}
		seenSources[source.Name] = struct{}{}
	}

	seenCategories := make(map[string]struct{}, len(layout.Categories))
	for _, category := range layout.Categories {
		if _, duplicate := seenCategories[category]; duplicate {
			return fmt.Errorf(layoutErrorTemplateConstant, ErrInvalidLayout, fmt.Sprintf(duplicateCategoryTemplateConstant, category))
		}
		seenCategories[category] = struct{}{}
	}

	return nil
}

// CategoryPath joins the base path, the source directory, and the category name.
func (layout Layout) CategoryPath(source Source, category string) string {
	return filepath.Join(layout.BasePath, source.Directory, category)
}

// HasImageExtension reports whether fileName ends with one of the layout extensions, ignoring case.
func (layout Layout) HasImageExtension(fileName string) bool {
	lowerFileName := strings.ToLower(fileName)
	for _, extension := range layout.Extensions {
		if strings.HasSuffix(lowerFileName, extension) {
			return true
		}
	}
	return false
}
