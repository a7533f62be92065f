package cli

import "errors"

// CLI-specific sentinel errors.
// These are validation/usage errors that don't belong to domain packages.

var (
	// ErrInputDir indicates the input directory could not be listed.
	ErrInputDir = errors.New("cannot read input directory")

	// ErrInvalidTimeout indicates a negative --timeout value.
	ErrInvalidTimeout = errors.New("invalid timeout")

	// ErrConfigExists indicates config init would overwrite an existing file.
	ErrConfigExists = errors.New("config file already exists")
)
