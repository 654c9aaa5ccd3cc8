// Package loader decides where parcels go. It contains the gravity support
// check, the bottom-left position search and the two loading strategies:
// one parcel per machine, and dense packing that reuses machines while
// keeping every parcel supported.
package loader
