package once

import "errors"

// errPanicked marks a panicking run in metrics only.
var errPanicked = errors.New("panicked")
