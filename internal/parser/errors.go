package parser

import "errors"

var (
	// ErrUnknownPrimitive indicates a primitive name absent from the catalog.
	ErrUnknownPrimitive = errors.New("unknown primitive")
	// ErrInvalidSkeleton indicates part ids that are not a dense 0..n-1 range.
	ErrInvalidSkeleton = errors.New("invalid skeleton")
)
