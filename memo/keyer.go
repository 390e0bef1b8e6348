package memo

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"math"
	"reflect"
	"sort"
	"strconv"
)

// Key identifies one logical call. It is the SHA-256 digest of a canonical
// encoding of the call's arguments, so it is comparable and fixed-size no
// matter how large the arguments are.
type Key [sha256.Size]byte

// String returns the hex form of the key.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// Kwargs holds keyword arguments. Their order never affects the key.
type Kwargs map[string]any

// Encoding tags. Every token starts with one so that values of different
// categories can never produce the same byte stream.
const (
	tagNil byte = iota + 1
	tagBool
	tagNumber
	tagComplex
	tagString
	tagRef
	tagArray
	tagStruct
	tagType
	tagArgs
	tagKwargs
)

// BuildKey derives the cache key for a call.
//
// Positional arguments are encoded in order, keyword arguments sorted by
// name. With typed set, each value is preceded by its runtime type so that
// int 1 and float64 1.0 yield different keys; otherwise numerically equal
// values share a key.
//
// Pointers, channels and unsafe pointers are encoded by type and address,
// matching the == operator on interface values. The first slice, map or func found (at any depth) aborts
// with an *UnhashableArgumentError.
func BuildKey(args []any, kwargs Kwargs, typed bool) (Key, error) {
	enc := &keyEncoder{h: sha256.New(), typed: typed}

	enc.tag(tagArgs)
	enc.uint(uint64(len(args)))
	for i, arg := range args {
		if err := enc.value(reflect.ValueOf(arg)); err != nil {
			return Key{}, &UnhashableArgumentError{Position: i, Type: err.typ}
		}
	}

	if len(kwargs) > 0 {
		names := make([]string, 0, len(kwargs))
		for name := range kwargs {
			names = append(names, name)
		}
		sort.Strings(names)

		enc.tag(tagKwargs)
		enc.uint(uint64(len(names)))
		for _, name := range names {
			enc.string(name)
			if err := enc.value(reflect.ValueOf(kwargs[name])); err != nil {
				return Key{}, &UnhashableArgumentError{Position: -1, Name: name, Type: err.typ}
			}
		}
	}

	var key Key
	enc.h.Sum(key[:0])
	return key, nil
}

type keyEncoder struct {
	h     hash.Hash
	typed bool
	buf   [8]byte
}

func (e *keyEncoder) tag(t byte) {
	e.buf[0] = t
	_, _ = e.h.Write(e.buf[:1])
}

func (e *keyEncoder) uint(u uint64) {
	binary.BigEndian.PutUint64(e.buf[:], u)
	_, _ = e.h.Write(e.buf[:])
}

func (e *keyEncoder) string(s string) {
	e.uint(uint64(len(s)))
	_, _ = e.h.Write([]byte(s))
}

func (e *keyEncoder) typeOf(t reflect.Type) {
	e.tag(tagType)
	e.string(t.PkgPath())
	e.string(t.String())
}

func (e *keyEncoder) value(v reflect.Value) *unhashableTypeError {
	if !v.IsValid() {
		e.tag(tagNil)
		return nil
	}
	if e.typed {
		e.typeOf(v.Type())
	}

	switch v.Kind() {
	case reflect.Bool:
		e.tag(tagBool)
		if v.Bool() {
			e.uint(1)
		} else {
			e.uint(0)
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.tag(tagNumber)
		e.string(strconv.FormatInt(v.Int(), 10))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		e.tag(tagNumber)
		e.string(strconv.FormatUint(v.Uint(), 10))

	case reflect.Float32, reflect.Float64:
		e.tag(tagNumber)
		e.string(formatFloat(v.Float()))

	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		if imag(c) == 0 {
			e.tag(tagNumber)
			e.string(formatFloat(real(c)))
			break
		}
		e.tag(tagComplex)
		e.string(formatFloat(real(c)))
		e.string(formatFloat(imag(c)))

	case reflect.String:
		e.tag(tagString)
		e.string(v.String())

	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		// A struct and its first field share an address, so the type is
		// part of the key even in untyped mode.
		if !e.typed {
			e.typeOf(v.Type())
		}
		e.tag(tagRef)
		e.uint(uint64(v.Pointer()))

	case reflect.Interface:
		if v.IsNil() {
			e.tag(tagNil)
			return nil
		}
		return e.value(v.Elem())

	case reflect.Array:
		e.tag(tagArray)
		e.uint(uint64(v.Len()))
		for i := 0; i < v.Len(); i++ {
			if err := e.value(v.Index(i)); err != nil {
				return err
			}
		}

	case reflect.Struct:
		// Distinct struct types are never equal, so the type is part of the
		// key even in untyped mode.
		if !e.typed {
			e.typeOf(v.Type())
		}
		e.tag(tagStruct)
		e.uint(uint64(v.NumField()))
		for i := 0; i < v.NumField(); i++ {
			if err := e.value(v.Field(i)); err != nil {
				return err
			}
		}

	default:
		return &unhashableTypeError{typ: v.Type()}
	}
	return nil
}

// formatFloat renders integral floats the way integers are rendered so that
// untyped keys treat 1 and 1.0 as the same argument.
func formatFloat(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		if f >= -(1<<63) && f < 1<<63 {
			return strconv.FormatInt(int64(f), 10)
		}
		if f > 0 && f < 1<<64 {
			return strconv.FormatUint(uint64(f), 10)
		}
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
