// Package filesystem provides the go-billy filesystems used to read asset
// trees and write the manifest: the host filesystem for regular runs and an
// in-memory filesystem for tests and previews.
package filesystem
