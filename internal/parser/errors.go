package parser

import "fmt"

// IndexNotFoundError is returned when tracks.md is absent from the conductor
// directory. It is the only error that aborts a whole load.
type IndexNotFoundError struct {
	Path string
}

func (e *IndexNotFoundError) Error() string {
	return fmt.Sprintf("parser: %s not found", e.Path)
}

// MetadataError reports a structurally invalid metadata side-file. It is
// strictly local to one track: the track proceeds with absent metadata.
type MetadataError struct {
	TrackID string
	Err     error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("parser: invalid metadata for track %s: %v", e.TrackID, e.Err)
}

func (e *MetadataError) Unwrap() error { return e.Err }
