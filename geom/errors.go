package geom

import "errors"

// ErrBadDomain is returned when a Domain has non-finite bounds or Max <= Min.
var ErrBadDomain = errors.New("geom: invalid domain")
