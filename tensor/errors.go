package tensor

import "errors"

// Sentinel errors for tensor package operations.
var (
	// ErrBadShape indicates a requested shape has a negative degree
	// dimension or a non-positive state or node dimension.
	ErrBadShape = errors.New("tensor: degree dimension must be >= 0, state and node dimensions > 0")

	// ErrOutOfRange indicates an index is outside the valid bounds for the
	// current layout.
	ErrOutOfRange = errors.New("tensor: index out of range")

	// ErrLayoutMismatch indicates an operation requiring one layout
	// (compute or distribute) was called while the tensor holds the other.
	ErrLayoutMismatch = errors.New("tensor: wrong layout for this operation")

	// ErrDimensionMismatch indicates two tensors or a tensor and a vector
	// have incompatible shapes for the requested operation.
	ErrDimensionMismatch = errors.New("tensor: dimension mismatch")

	// ErrNaNInf indicates a NaN or ±Inf value was produced or encountered
	// where only finite values are valid.
	ErrNaNInf = errors.New("tensor: NaN or Inf encountered")
)
