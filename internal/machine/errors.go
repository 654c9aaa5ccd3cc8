package machine

import "errors"

// ErrPlacement indicates an attempt to stamp a parcel over occupied or out-of-bounds cells.
// It signals a bug in the caller, which must check Collides before placing.
var ErrPlacement = errors.New("cannot place parcel at the requested position")
