package store

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrCorpus   = errors.New("malformed corpus")
)
