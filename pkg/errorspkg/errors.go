// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates an unexpected internal error whose cause
// is not exposed to the caller.
var ErrInternal = errors.New("internal")
