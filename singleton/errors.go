package singleton

import "errors"

// ErrNilConstructor is returned by Get when the Instance has no constructor.
var ErrNilConstructor = errors.New("singleton: nil constructor")
