package nrfpkg

import "fmt"

// NotAnArchiveError indicates the package file is not a readable zip archive.
type NotAnArchiveError struct {
	Err error
}

func (e *NotAnArchiveError) Error() string {
	return fmt.Sprintf("package is not a zip archive: %v", e.Err)
}

func (e *NotAnArchiveError) Unwrap() error { return e.Err }

// MissingManifestError indicates the archive has no manifest entry.
type MissingManifestError struct{}

func (e *MissingManifestError) Error() string {
	return fmt.Sprintf("package does not contain %s", ManifestFileName)
}

// InvalidManifestError indicates the manifest could not be parsed or
// references no usable images.
type InvalidManifestError struct {
	Err error
}

func (e *InvalidManifestError) Error() string {
	return fmt.Sprintf("invalid package manifest: %v", e.Err)
}

func (e *InvalidManifestError) Unwrap() error { return e.Err }

// MissingFileError indicates the manifest references an archive entry that
// does not exist.
type MissingFileError struct {
	Name string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("manifest references missing archive entry %q", e.Name)
}

// EmptyImageError indicates a referenced archive entry contains no data.
type EmptyImageError struct {
	Name string
}

func (e *EmptyImageError) Error() string {
	return fmt.Sprintf("archive entry %q is empty", e.Name)
}
