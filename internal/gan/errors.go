package gan

import (
	"errors"
	"fmt"
)

var (
	// ErrEncoding marks an I/O failure or a model value the fixed schema
	// cannot represent. Nothing is ever silently dropped.
	ErrEncoding = errors.New("gan encoding failed")
	// ErrDecoding marks an I/O failure or a document outside the fixed schema.
	ErrDecoding = errors.New("gan decoding failed")
)

// EncodingError wraps a failure while serializing a project.
type EncodingError struct {
	Msg string
	Err error
}

func (e *EncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrEncoding.Error(), e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrEncoding.Error(), e.Msg)
}

func (e *EncodingError) Unwrap() error { return ErrEncoding }

// DecodingError wraps a failure while parsing a document.
type DecodingError struct {
	Msg string
	Err error
}

func (e *DecodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrDecoding.Error(), e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrDecoding.Error(), e.Msg)
}

func (e *DecodingError) Unwrap() error { return ErrDecoding }

func encodingf(err error, format string, args ...any) error {
	return &EncodingError{Msg: fmt.Sprintf(format, args...), Err: err}
}

func decodingf(err error, format string, args ...any) error {
	return &DecodingError{Msg: fmt.Sprintf(format, args...), Err: err}
}
