package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidLabel is returned when a label string cannot be parsed.
	ErrInvalidLabel = zerr.New("invalid label")

	// ErrInvalidLabelPattern is returned when a label pattern string cannot be parsed.
	ErrInvalidLabelPattern = zerr.New("invalid label pattern")

	// ErrTargetAlreadyExists is returned when adding a target whose label is taken.
	ErrTargetAlreadyExists = zerr.New("target already exists")

	// ErrTargetNotFound is returned when a requested target is not in the graph.
	ErrTargetNotFound = zerr.New("target not found")

	// ErrMissingDependency is returned when a target references a dependency
	// that does not exist in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrConfigNotFound is returned when no manifest file can be discovered.
	ErrConfigNotFound = zerr.New("configuration file not found")

	// ErrPublicHeadersWithDefaultPublic is returned when a target declares an
	// explicit public-header list while all of its headers are already public
	// by default. The two settings are mutually exclusive.
	ErrPublicHeadersWithDefaultPublic = zerr.New("public headers listed on an all-headers-public target")

	// ErrHeaderCheckFailed is returned by the application when the include
	// check finished with one or more violations.
	ErrHeaderCheckFailed = zerr.New("header check failed")
)
