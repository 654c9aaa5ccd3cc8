// Package parser turns text into parcel blocks. A block is a run of
// non-blank lines; blank lines separate blocks. Sources read blocks from
// files, directories, readers or memory, and the helpers here normalize and
// validate the raw lines before they become parcels.
package parser
