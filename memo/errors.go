package memo

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrUnhashableArgument is matched by every error returned when call
// arguments cannot be turned into a cache key.
var ErrUnhashableArgument = errors.New("memo: unhashable argument")

// UnhashableArgumentError reports which argument could not be used as key
// material. Exactly one of Position (>= 0) or Name (non-empty) identifies it.
type UnhashableArgumentError struct {
	// Position is the index of the positional argument, or -1 for a keyword.
	Position int
	// Name is the keyword name, empty for a positional argument.
	Name string
	// Type is the offending type. For composites it is the nested
	// slice, map or func type that made the value incomparable.
	Type reflect.Type
}

func (e *UnhashableArgumentError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%v: keyword %q has type %v", ErrUnhashableArgument, e.Name, e.Type)
	}
	return fmt.Sprintf("%v: argument %d has type %v", ErrUnhashableArgument, e.Position, e.Type)
}

// Is reports whether target is ErrUnhashableArgument.
func (e *UnhashableArgumentError) Is(target error) bool {
	return target == ErrUnhashableArgument
}

// unhashableTypeError is returned by the encoder and converted into an
// UnhashableArgumentError once the argument position is known.
type unhashableTypeError struct {
	typ reflect.Type
}

func (e *unhashableTypeError) Error() string {
	return fmt.Sprintf("memo: type %v is not comparable", e.typ)
}
