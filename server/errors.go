package server

import "errors"

var (
	// ErrAssistantRequired is returned when an assistant is not provided.
	ErrAssistantRequired = errors.New("assistant required")

	// ErrRepositoryRequired is returned when a material repository is not provided.
	ErrRepositoryRequired = errors.New("material repository required")

	// ErrUnsupportedFormat is returned for an unrecognized export format.
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
