package config

import "errors"

// Load errors
var (
	ErrBadOptionsFile = errors.New("invalid options file")
	ErrBadMappingFile = errors.New("invalid mapping file")
	ErrBadVersion     = errors.New("unsupported mapping file version")
)
