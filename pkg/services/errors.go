package services

import "errors"

var (
	// ErrTaskRequired is returned when a submitted task has no text after sanitizing
	ErrTaskRequired = errors.New("task is required")
	// ErrIdeaTitleRequired is returned when a new idea has no title after sanitizing
	ErrIdeaTitleRequired = errors.New("idea title is required")
	// ErrIdeaIDRequired is returned when a build or remove request names no idea
	ErrIdeaIDRequired = errors.New("ideaId is required")
)
