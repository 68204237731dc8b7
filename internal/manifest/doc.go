// Package manifest builds the parts manifest: it scans the category
// directories of every configured source tree, keeps the files whose names
// carry an image extension, and persists the sorted listings as JSON.
//
// Scanner inspects one source/category directory and reports the outcome as a
// ScanResult. Builder drives the Scanner across the declared sources and
// categories, Writer persists the Manifest, Reporter renders progress text, and
// Service chains them into a single run. CommandBuilder exposes the run as a
// Cobra command.
package manifest
