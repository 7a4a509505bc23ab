package domain

import "errors"

var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrSlugTaken         = errors.New("slug already taken")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAlreadyClaimed    = errors.New("pipeline already claimed this project")
	ErrInvalidMetadata   = errors.New("invalid project metadata")
)
