// Package parcel models the irregular shapes loaded into machines: an occupancy
// mask with a single fill symbol, built from normalized text rows, together with
// the validator that checks symbol presence, uniform row width and 4-connectivity.
package parcel
