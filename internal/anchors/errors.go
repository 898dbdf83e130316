package anchors

import "errors"

var (
	// ErrVectorLengthMismatch indicates two vectors have different dimensions.
	ErrVectorLengthMismatch = errors.New("vector length mismatch")
	// ErrEmpty indicates there were no anchor verbs to embed or write.
	ErrEmpty = errors.New("no anchors")
)
