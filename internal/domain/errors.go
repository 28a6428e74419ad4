package domain

import "errors"

// Domain errors
var (
	ErrFileNotFound    = errors.New("log file not found")
	ErrAlreadyWatching = errors.New("already watching a file")
	ErrInvalidPattern  = errors.New("invalid filter pattern")
	ErrConfigNotFound  = errors.New("config file not found")
	ErrInvalidConfig   = errors.New("invalid configuration")
)
