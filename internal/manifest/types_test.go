package manifest_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/partscan/internal/manifest"
)

func TestNewManifestPopulatesEverySlot(testInstance *testing.T) {
	built := manifest.NewManifest(manifest.DefaultLayout())
	require.Len(testInstance, built.Sources, 2)
	require.Equal(testInstance, "film", built.Sources[0].Source)
	require.Equal(testInstance, "ai", built.Sources[1].Source)

	for _, sourceListing := range built.Sources {
		require.Len(testInstance, sourceListing.Categories, 6)
		for _, categoryListing := range sourceListing.Categories {
			require.NotNil(testInstance, categoryListing.Files)
			require.Empty(testInstance, categoryListing.Files)
		}
	}
}

func TestManifestSetAndFiles(testInstance *testing.T) {
	built := manifest.NewManifest(smallLayout())

	require.True(testInstance, built.Set("ai", "eyes", []string{"e.png"}))
	require.True(testInstance, built.Set("film", "head", nil))
	require.False(testInstance, built.Set("film", "tail", []string{"x.png"}))
	require.False(testInstance, built.Set("sketch", "head", []string{"x.png"}))

	files, found := built.Files("ai", "eyes")
	require.True(testInstance, found)
	require.Equal(testInstance, []string{"e.png"}, files)

	files, found = built.Files("film", "head")
	require.True(testInstance, found)
	require.Equal(testInstance, []string{}, files)

	_, found = built.Files("film", "tail")
	require.False(testInstance, found)
}

func TestManifestMarshalJSONKeepsDeclaredOrder(testInstance *testing.T) {
	built := manifest.NewManifest(smallLayout())
	built.Set("film", "head", []string{"B.JPG", "a.png"})
	built.Set("ai", "eyes", []string{"ça.png"})

	encoded, encodeError := json.Marshal(built)
	require.NoError(testInstance, encodeError)
	require.Equal(testInstance,
		`{"film":{"head":["B.JPG","a.png"],"eyes":[]},"ai":{"head":[],"eyes":["ça.png"]}}`,
		string(encoded),
	)

	built.Set("ai", "eyes", []string{"occhi <blu> & verdi.png", "ça.png"})
	unescaped, unescapedError := manifest.Encode(built)
	require.NoError(testInstance, unescapedError)
	require.Contains(testInstance, string(unescaped), `"occhi <blu> & verdi.png"`)
	require.Contains(testInstance, string(unescaped), `"ça.png"`)
}

func TestManifestUnmarshalJSONPreservesOrder(testInstance *testing.T) {
	document := `{"ai":{"foot":["f.png"],"head":null},"film":{"eyes":[]}}`

	decoded := manifest.Manifest{}
	require.NoError(testInstance, json.Unmarshal([]byte(document), &decoded))
	require.Equal(testInstance, manifest.Manifest{Sources: []manifest.SourceListing{
		{Source: "ai", Categories: []manifest.CategoryListing{
			{Category: "foot", Files: []string{"f.png"}},
			{Category: "head", Files: []string{}},
		}},
		{Source: "film", Categories: []manifest.CategoryListing{
			{Category: "eyes", Files: []string{}},
		}},
	}}, decoded)

	reencoded, encodeError := json.Marshal(decoded)
	require.NoError(testInstance, encodeError)
	require.Equal(testInstance, `{"ai":{"foot":["f.png"],"head":[]},"film":{"eyes":[]}}`, string(reencoded))
}

func TestManifestUnmarshalJSONRejectsUnexpectedShapes(testInstance *testing.T) {
	testCases := []struct {
		name     string
		document string
	}{
		{name: "top_level_array", document: `[]`},
		{name: "source_not_object", document: `{"film":[]}`},
		{name: "category_not_list", document: `{"film":{"head":{}}}`},
		{name: "file_not_string", document: `{"film":{"head":[1]}}`},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			decoded := manifest.Manifest{}
			require.Error(testInstance, json.Unmarshal([]byte(testCase.document), &decoded))
		})
	}
}

func TestSummarize(testInstance *testing.T) {
	built := manifest.NewManifest(manifest.DefaultLayout())
	built.Set("film", "head", []string{"a.png", "b.png"})
	built.Set("film", "foot", []string{"c.png"})
	built.Set("ai", "arms", []string{"d.png", "e.png", "f.png"})

	summary := manifest.Summarize(built)
	require.Equal(testInstance, []manifest.SourceTotal{{Source: "film", Count: 3}, {Source: "ai", Count: 3}}, summary.Sources)
	require.Equal(testInstance, 6, summary.Total)
	require.Equal(testInstance, 3, summary.Count("film"))
	require.Equal(testInstance, 0, summary.Count("sketch"))
}
