package models

import "errors"

// Sentinel errors returned by stores and matched by controllers via errors.Is.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)
