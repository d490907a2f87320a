package project

import "errors"

// Static errors for project resolution.
var (
	// ErrHomeDirectoryUnavailable is returned when the home directory cannot be
	// determined or is not a directory.
	ErrHomeDirectoryUnavailable = errors.New("cannot determine home directory")
	// ErrCurrentDirectoryUnavailable is returned when the working directory cannot be read.
	ErrCurrentDirectoryUnavailable = errors.New("cannot determine current directory")
	// ErrConfigDeclined is returned when the user declines creating a project config.
	// It is not a failure: callers exit cleanly without doing anything.
	ErrConfigDeclined = errors.New("project config creation declined")
	// ErrMalformedConfig is returned for a project config line without a "key:value" shape.
	ErrMalformedConfig = errors.New("malformed project config")
	// ErrInvalidProjectName is returned for names that cannot be used as a directory name.
	ErrInvalidProjectName = errors.New("invalid project name")
)
