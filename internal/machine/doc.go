// Package machine holds the fixed 6x6 loading area parcels are placed into.
// Machines are immutable values: placing a parcel produces a new Machine.
package machine
