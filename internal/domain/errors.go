package domain

import (
	"errors"
	"fmt"
)

// Kind separates a wrong value category from an out-of-domain value.
type Kind uint8

const (
	KindType Kind = iota + 1
	KindRange
)

func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindRange:
		return "range"
	default:
		return "unknown"
	}
}

var (
	ErrType  = errors.New("invalid type")
	ErrRange = errors.New("value out of range")
)

// ValidationError is returned by every constructor and setter in this package.
// errors.Is matches it against ErrType or ErrRange according to Kind.
type ValidationError struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	switch e.Kind {
	case KindType:
		return ErrType
	case KindRange:
		return ErrRange
	default:
		return nil
	}
}

func typeError(field, msg string) error {
	return &ValidationError{Kind: KindType, Field: field, Message: msg}
}

func rangeError(field, msg string) error {
	return &ValidationError{Kind: KindRange, Field: field, Message: msg}
}

// KindOf reports the validation kind carried by err, or 0 if err is not a validation error.
func KindOf(err error) Kind {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return 0
}
