package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	manifestObjectExpectedTemplateConstant = "expected JSON object, found %v"
	manifestKeyExpectedTemplateConstant    = "expected object key, found %v"
)

// ScanStatus classifies the outcome of scanning one category directory.
type ScanStatus string

// Scan outcomes.
const (
	ScanStatusOK               ScanStatus = "ok"
	ScanStatusMissingDirectory ScanStatus = "missing_directory"
	ScanStatusFailed           ScanStatus = "scan_failed"
)

// ScanResult records what a single source/category scan found. Files is never nil; Err wraps ErrMissingDirectory or ErrScanFailure when Status is not ok.
type ScanResult struct {
	Source   string
	Category string
	Path     string
	Files    []string
	Status   ScanStatus
	Err      error
}

// CategoryListing holds the image file names of one category.
type CategoryListing struct {
	Category string
	Files    []string
}

// SourceListing holds the category listings of one source in declared order.
type SourceListing struct {
	Source     string
	Categories []CategoryListing
}

// Manifest maps sources to categories to sorted image file names while preserving declaration order.
type Manifest struct {
	Sources []SourceListing
}

// NewManifest creates a manifest with an empty listing for every source and category of layout.
func NewManifest(layout Layout) Manifest {
	manifest := Manifest{Sources: make([]SourceListing, 0, len(layout.Sources))}
	for _, source := range layout.Sources {
		listing := SourceListing{Source: source.Name, Categories: make([]CategoryListing, 0, len(layout.Categories))}
		for _, category := range layout.Categories {
			listing.Categories = append(listing.Categories, CategoryListing{Category: category, Files: []string{}})
		}
		manifest.Sources = append(manifest.Sources, listing)
	}
	return manifest
}

// Set replaces the file list stored for source and category. It reports false when the slot does not exist.
func (manifest *Manifest) Set(source string, category string, files []string) bool {
	for sourceIndex := range manifest.Sources {
		if manifest.Sources[sourceIndex].Source != source {
			continue
		}
		for categoryIndex := range manifest.Sources[sourceIndex].Categories {
			if manifest.Sources[sourceIndex].Categories[categoryIndex].Category != category {
				continue
			}
			if files == nil {
				files = []string{}
			}
			manifest.Sources[sourceIndex].Categories[categoryIndex].Files = files
			return true
		}
	}
	return false
}

// Files returns the file list stored for source and category.
func (manifest Manifest) Files(source string, category string) ([]string, bool) {
	for _, sourceListing := range manifest.Sources {
		if sourceListing.Source != source {
			continue
		}
		for _, categoryListing := range sourceListing.Categories {
			if categoryListing.Category == category {
				return categoryListing.Files, true
			}
		}
	}
	return nil, false
}

// MarshalJSON encodes the manifest as nested objects whose keys follow declaration order. HTML characters and non-ASCII text are left unescaped.
func (manifest Manifest) MarshalJSON() ([]byte, error) {
	buffer := &bytes.Buffer{}
	buffer.WriteByte('{')
	for sourceIndex, sourceListing := range manifest.Sources {
		if sourceIndex > 0 {
			buffer.WriteByte(',')
		}
		if encodeError := writeJSONValue(buffer, sourceListing.Source); encodeError != nil {
			return nil, encodeError
		}
		buffer.WriteString(":{")
		for categoryIndex, categoryListing := range sourceListing.Categories {
			if categoryIndex > 0 {
				buffer.WriteByte(',')
			}
			if encodeError := writeJSONValue(buffer, categoryListing.Category); encodeError != nil {
				return nil, encodeError
			}
			buffer.WriteByte(':')
			files := categoryListing.Files
			if files == nil {
				files = []string{}
			}
			if encodeError := writeJSONValue(buffer, files); encodeError != nil {
				return nil, encodeError
			}
		}
		buffer.WriteByte('}')
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// UnmarshalJSON decodes nested source and category objects, keeping the key order found in the document.
func (manifest *Manifest) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	if delimiterError := expectObjectStart(decoder); delimiterError != nil {
		return delimiterError
	}

	decoded := Manifest{Sources: []SourceListing{}}
	for decoder.More() {
		sourceName, keyError := readObjectKey(decoder)
		if keyError != nil {
			return keyError
		}
		if delimiterError := expectObjectStart(decoder); delimiterError != nil {
			return delimiterError
		}

		sourceListing := SourceListing{Source: sourceName, Categories: []CategoryListing{}}
		for decoder.More() {
			categoryName, categoryKeyError := readObjectKey(decoder)
			if categoryKeyError != nil {
				return categoryKeyError
			}
			files := []string{}
			if decodeError := decoder.Decode(&files); decodeError != nil {
				return decodeError
			}
			if files == nil {
				files = []string{}
			}
			sourceListing.Categories = append(sourceListing.Categories, CategoryListing{Category: categoryName, Files: files})
		}
		if _, closingError := decoder.Token(); closingError != nil {
			return closingError
		}
		decoded.Sources = append(decoded.Sources, sourceListing)
	}
	if _, closingError := decoder.Token(); closingError != nil {
		return closingError
	}

	*manifest = decoded
	return nil
}

func writeJSONValue(buffer *bytes.Buffer, value any) error {
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	if encodeError := encoder.Encode(value); encodeError != nil {
		return encodeError
	}
	buffer.Truncate(buffer.Len() - 1)
	return nil
}

func expectObjectStart(decoder *json.Decoder) error {
	token, tokenError := decoder.Token()
	if tokenError != nil {
		return tokenError
	}
	if delimiter, isDelimiter := token.(json.Delim); !isDelimiter || delimiter != '{' {
		return fmt.Errorf(manifestObjectExpectedTemplateConstant, token)
	}
	return nil
}

func readObjectKey(decoder *json.Decoder) (string, error) {
	token, tokenError := decoder.Token()
	if tokenError != nil {
		return "", tokenError
	}
	key, isString := token.(string)
	if !isString {
		return "", fmt.Errorf(manifestKeyExpectedTemplateConstant, token)
	}
	return key, nil
}
