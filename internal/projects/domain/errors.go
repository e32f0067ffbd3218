package domain

import "errors"

var (
	ErrNotFound     = errors.New("project not found")
	ErrCorruptStore = errors.New("projects file is not a JSON array")
)
