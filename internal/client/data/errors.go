package data

import "errors"

var (
	ErrNotFound              = errors.New("record not found")
	ErrDeleted               = errors.New("record is deleted")
	ErrUnsupportedCollection = errors.New("unsupported collection")
)
