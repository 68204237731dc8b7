package manifest_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/partscan/internal/manifest"
	pathutils "github.com/temirov/partscan/internal/utils/path"
)

func TestDefaultLayout(testInstance *testing.T) {
	layout := manifest.DefaultLayout()
	require.Equal(testInstance, "assets/image", layout.BasePath)
	require.Equal(testInstance, "assets/parts_manifest.json", layout.OutputPath)
	require.Equal(testInstance, []manifest.Source{
		{Name: "film", Directory: "parti_estratte_film"},
		{Name: "ai", Directory: "parti_estratte_ai"},
	}, layout.Sources)
	require.Equal(testInstance, []string{"head", "eyes", "chest", "arms", "hand", "foot"}, layout.Categories)
	require.Equal(testInstance, []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp"}, layout.Extensions)
	require.NoError(testInstance, layout.Validate())
	require.Equal(testInstance, filepath.Join("assets", "image", "parti_estratte_ai", "eyes"), layout.CategoryPath(layout.Sources[1], "eyes"))
}

func TestLayoutSanitize(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "/home/artist", nil
	})

	layout := manifest.Layout{
		BasePath:   " ~/art/image ",
		OutputPath: "out/parts.json ",
		Sources: []manifest.Source{
			{Name: " film ", Directory: " parti_estratte_film "},
			{Name: " ", Directory: ""},
		},
		Categories: []string{" head", "", "eyes "},
		Extensions: []string{"PNG", " .Jpg ", ""},
	}

	sanitized := layout.Sanitize(expander)
	require.Equal(testInstance, filepath.Join("/home/artist", "art", "image"), sanitized.BasePath)
	require.Equal(testInstance, filepath.Join("out", "parts.json"), sanitized.OutputPath)
	require.Equal(testInstance, []manifest.Source{{Name: "film", Directory: "parti_estratte_film"}}, sanitized.Sources)
	require.Equal(testInstance, []string{"head", "eyes"}, sanitized.Categories)
	require.Equal(testInstance, []string{".png", ".jpg"}, sanitized.Extensions)
}

func TestLayoutValidate(testInstance *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*manifest.Layout)
	}{
		{name: "no_sources", mutate: func(layout *manifest.Layout) { layout.Sources = nil }},
		{name: "no_categories", mutate: func(layout *manifest.Layout) { layout.Categories = nil }},
		{name: "no_extensions", mutate: func(layout *manifest.Layout) { layout.Extensions = nil }},
		{name: "no_output_path", mutate: func(layout *manifest.Layout) { layout.OutputPath = "" }},
		{name: "source_without_name", mutate: func(layout *manifest.Layout) { layout.Sources[0].Name = "" }},
		{name: "source_without_directory", mutate: func(layout *manifest.Layout) { layout.Sources[0].Directory = "" }},
		{name: "duplicate_source", mutate: func(layout *manifest.Layout) { layout.Sources[1].Name = layout.Sources[0].Name }},
		{name: "duplicate_category", mutate: func(layout *manifest.Layout) { layout.Categories = append(layout.Categories, "head") }},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			layout := manifest.DefaultLayout()
			testCase.mutate(&layout)
			validationError := layout.Validate()
			require.Error(testInstance, validationError)
			require.True(testInstance, errors.Is(validationError, manifest.ErrInvalidLayout))
		})
	}
}

func TestLayoutHasImageExtension(testInstance *testing.T) {
	layout := manifest.DefaultLayout()

	testCases := []struct {
		fileName string
		expected bool
	}{
		{fileName: "PHOTO.JPG", expected: true},
		{fileName: "arm.jpeg", expected: true},
		{fileName: "foot.Gif", expected: true},
		{fileName: ".png", expected: true},
		{fileName: "archive.png.zip", expected: false},
		{fileName: "photo.txt", expected: false},
		{fileName: "photo", expected: false},
		{fileName: "jpg", expected: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.fileName, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, layout.HasImageExtension(testCase.fileName))
		})
	}
}

func TestDefaultConfigurationValues(testInstance *testing.T) {
	values := manifest.DefaultConfigurationValues("manifest")
	require.Equal(testInstance, "assets/image", values["manifest.base_path"])
	require.Equal(testInstance, "assets/parts_manifest.json", values["manifest.output_path"])
	require.Equal(testInstance, []string{"head", "eyes", "chest", "arms", "hand", "foot"}, values["manifest.categories"])
	require.Len(testInstance, values["manifest.sources"], 2)
}
