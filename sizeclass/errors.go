package sizeclass

import "github.com/pkg/errors"

// ErrNotPowerOfTwo is returned from Config.Validate when Alignment is not a power of two.
var ErrNotPowerOfTwo error = errors.New("value must be a power of two")

// ErrUnsupportedAlignment is returned from Config.Validate when Alignment is
// a power of two but not 8: the header and footer boundary tags are packed
// into fixed 8-byte words, so a configured alignment wider than the tag
// itself would hand back payload addresses that are not actually aligned.
var ErrUnsupportedAlignment error = errors.New("alignment must be exactly 8 bytes given the fixed boundary-tag width")
