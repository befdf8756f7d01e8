// Package status declares error constants returned by
// implementations of the remote configuration Store interface.
//
// NOTE: such constants are located in a separate package to avoid
// creating undue cyclical dependencies between pkg/remoteconfig and
// its consumers.
package status

import "github.com/oneconcern/repofind/pkg/errors"

var (
	// ErrNotFound indicates that the named remote is not configured
	ErrNotFound = errors.New("remote not found")

	// ErrExists indicates that the named remote is already configured and cannot be overridden
	ErrExists = errors.New("remote exists already")

	// ErrInvalidName indicates that a remote has an invalid name
	ErrInvalidName = errors.New("invalid remote name")

	// ErrConfig indicates an unreadable or malformed remote configuration
	ErrConfig = errors.New("unreadable remote configuration")
)
