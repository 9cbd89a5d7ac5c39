package design

import "errors"

// ErrInvalidState indicates an operation called in a state that does not
// allow it (e.g. Sample before Allocate, or Allocate after a failed SetGrid).
var ErrInvalidState = errors.New("design: operation not allowed in current state")
