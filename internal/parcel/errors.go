package parcel

import "errors"

var (
	// ErrMissingSymbol is reported when a parcel has no fill symbol.
	ErrMissingSymbol = errors.New("parcel has no fill symbol")
	// ErrRaggedRow is reported for every row whose width differs from the first row.
	ErrRaggedRow = errors.New("parcel row width mismatch")
	// ErrEmpty is reported when a parcel has zero size or no filled cells.
	ErrEmpty = errors.New("parcel is empty")
	// ErrDisconnected is reported when filled cells do not form a single 4-connected component.
	ErrDisconnected = errors.New("parcel is not connected")
)
