package protocol

import (
	"errors"
	"fmt"
)

var ErrInvalidData = errors.New("protocol: invalid data")

var (
	ErrZeroSized           = fmt.Errorf("%w: zero-sized types are forbidden", ErrInvalidData)
	ErrCardinalityOverflow = fmt.Errorf("%w: entry count exceeds u32 length prefix", ErrInvalidData)
	ErrCountMismatch       = fmt.Errorf("%w: source yielded a different entry count than advertised", ErrInvalidData)
	ErrTooManyEntries      = fmt.Errorf("%w: entry count exceeds decode limit", ErrInvalidData)
	ErrTrailingBytes       = fmt.Errorf("%w: not all bytes read", ErrInvalidData)
	ErrUnknownMode         = errors.New("protocol: unknown ordering mode")
)
