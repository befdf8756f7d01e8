// Package status exports errors produced by the finder package.
package status

import (
	"github.com/oneconcern/repofind/pkg/errors"
)

var (
	// ErrInvalidRef indicates a malformed or empty ref list was passed to a resolve operation
	ErrInvalidRef = errors.New("invalid ref list")

	// ErrNoFinders indicates a resolve operation was requested without any finder to delegate to
	ErrNoFinders = errors.New("no finders to resolve with")

	// ErrCrossDevice indicates a ref resolved to a path outside the device of its mount root
	ErrCrossDevice = errors.New("ref resolves outside its mount device")
)
