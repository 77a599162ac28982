package errors

import (
	"errors"
	"fmt"
)

// Custom error types for the vinyl library application

// ErrConnectionFailed is returned when the relational store cannot be reached
var ErrConnectionFailed = errors.New("database connection failed")

// ErrTimeout is returned when a storage or filesystem call exceeds its deadline
var ErrTimeout = errors.New("operation timed out")

// ErrArtistNotFound is returned when an artist id doesn't exist in the database
var ErrArtistNotFound = errors.New("artist not found")

// ErrVinylNotFound is returned when a vinyl id doesn't exist in the database
var ErrVinylNotFound = errors.New("vinyl not found")

// ErrInvalidArtist is returned when a vinyl references an artist id that doesn't exist
var ErrInvalidArtist = errors.New("invalid artist")

// ErrArtistHasVinyls is returned when deleting an artist that vinyls still reference
var ErrArtistHasVinyls = errors.New("artist still has vinyls")

var (
	ErrInvalidName     = errors.New("invalid name")
	ErrInvalidCount    = errors.New("count must not be negative")
	ErrInvalidFileName = errors.New("invalid file name")
)

// ErrImageNotFound is returned when the requested image is not in the image directory
var ErrImageNotFound = errors.New("image not found")

// ErrImageTooLarge is returned when an upload exceeds the configured cap
type ErrImageTooLarge struct {
	Name  string
	Limit int64
}

func (e ErrImageTooLarge) Error() string {
	return fmt.Sprintf("image %s exceeds the %d byte limit", e.Name, e.Limit)
}

// ErrImageIO is returned when reading or writing an image file fails
type ErrImageIO struct {
	Op   string
	Name string
	Err  error
}

func (e ErrImageIO) Error() string {
	return fmt.Sprintf("failed to %s image %s: %v", e.Op, e.Name, e.Err)
}

func (e ErrImageIO) Unwrap() error {
	return e.Err
}
