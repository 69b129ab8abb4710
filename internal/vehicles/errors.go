package vehicles

import "errors"

var (
	ErrBrandNotFound = errors.New("brand not found")
	ErrModelNotFound = errors.New("model not found")
)
