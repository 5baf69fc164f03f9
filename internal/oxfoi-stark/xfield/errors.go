package xfield

import "errors"

var errDivideByZero = errors.New("xfield: division or inversion of zero")
