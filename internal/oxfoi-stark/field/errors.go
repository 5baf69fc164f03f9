package field

import "errors"

// errDivideByZero and errNoPrimitiveRoot are the package's two domain
// errors; callers identify them with errors.Is.
var (
	errDivideByZero    = errors.New("field: division or inversion of zero")
	errNoPrimitiveRoot = errors.New("field: no primitive root of unity of the requested order")
)
