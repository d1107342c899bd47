package ocean

import "errors"

// ErrNonFiniteField indicates NaN or Inf in the velocity field.
var ErrNonFiniteField = errors.New("ocean: non-finite value in velocity field")
